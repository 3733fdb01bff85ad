package repository

import (
    "context"
    "errors"
    "fmt"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

type FollowRepository interface {
    // Toggle 关注/取关。与互动记录同构：翻转 Active 而不删行，
    // 事务内同步维护被关注者的 follower_count。
    Toggle(ctx context.Context, followerID, followeeID string, activate bool) (active bool, delta int64, err error)
    // ActiveFolloweeIDs 取 viewer 的有效关注集（following 页谓词）
    ActiveFolloweeIDs(ctx context.Context, followerID string) ([]string, error)
    // Edges 批量取 viewer 对一组作者的有效关注边，单次 IN 查询
    Edges(ctx context.Context, followerID string, followeeIDs []string) ([]*model.Follow, error)
    ListFollowing(ctx context.Context, followerID string, offset, limit int) ([]*model.Follow, error)
    ListFans(ctx context.Context, followeeID string, offset, limit int) ([]*model.Follow, error)
}

type followRepository struct {
    db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID string, activate bool) (bool, int64, error) {
    var (
        active bool
        delta  int64
    )
    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        var edge model.Follow
        err := lockForUpdate(tx).
            Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
            First(&edge).Error

        switch {
        case errors.Is(err, gorm.ErrRecordNotFound):
            if !activate {
                active, delta = false, 0
                return nil
            }
            edge = model.Follow{
                ID:         uuid.New().String(),
                FollowerID: followerID,
                FolloweeID: followeeID,
                Active:     true,
            }
            if cErr := tx.Create(&edge).Error; cErr != nil {
                return fmt.Errorf("%w: concurrent first follow: %v", errs.ErrConflict, cErr)
            }
            active, delta = true, 1

        case err != nil:
            return errs.Unavailablef(err)

        default:
            if edge.Active == activate {
                active, delta = edge.Active, 0
                return nil
            }
            if uErr := tx.Model(&model.Follow{}).Where("id = ?", edge.ID).
                Update("active", activate).Error; uErr != nil {
                return errs.Unavailablef(uErr)
            }
            active = activate
            if activate {
                delta = 1
            } else {
                delta = -1
            }
        }

        if delta != 0 {
            q := tx.Model(&model.User{}).Where("id = ?", followeeID)
            if delta < 0 {
                q = q.Where("follower_count >= ?", -delta)
            }
            if uErr := q.UpdateColumn("follower_count", gorm.Expr("follower_count + ?", delta)).Error; uErr != nil {
                return errs.Unavailablef(uErr)
            }
        }
        return nil
    })
    if err != nil {
        return false, 0, err
    }
    return active, delta, nil
}

func (r *followRepository) ActiveFolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).Model(&model.Follow{}).
        Where("follower_id = ? AND active = ?", followerID, true).
        Pluck("followee_id", &ids).Error
    if err != nil {
        return nil, errs.Unavailablef(err)
    }
    return ids, nil
}

func (r *followRepository) Edges(ctx context.Context, followerID string, followeeIDs []string) ([]*model.Follow, error) {
    if len(followeeIDs) == 0 {
        return nil, nil
    }
    var edges []*model.Follow
    err := r.db.WithContext(ctx).
        Where("follower_id = ? AND followee_id IN ? AND active = ?", followerID, followeeIDs, true).
        Find(&edges).Error
    if err != nil {
        return nil, errs.Unavailablef(err)
    }
    return edges, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string, offset, limit int) ([]*model.Follow, error) {
    var res []*model.Follow
    err := r.db.WithContext(ctx).
        Where("follower_id = ? AND active = ?", followerID, true).
        Order("created_at DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    if err != nil {
        return nil, errs.Unavailablef(err)
    }
    return res, nil
}

func (r *followRepository) ListFans(ctx context.Context, followeeID string, offset, limit int) ([]*model.Follow, error) {
    var res []*model.Follow
    err := r.db.WithContext(ctx).
        Where("followee_id = ? AND active = ?", followeeID, true).
        Order("created_at DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    if err != nil {
        return nil, errs.Unavailablef(err)
    }
    return res, nil
}
