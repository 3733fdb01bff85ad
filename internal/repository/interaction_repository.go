package repository

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/rank"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

type InteractionRepository interface {
    // ActiveRecords 批量取 viewer 对一页内容的有效互动记录，单次 IN 查询
    ActiveRecords(ctx context.Context, userID string, contentIDs []string, kinds []string) ([]*model.Interaction, error)
    // Toggle 在单个事务内完成 读取→状态迁移→落记录→计数增减→热度分重算。
    // 返回迁移后的激活状态与本次计数增量（幂等重复操作增量为 0）。
    Toggle(ctx context.Context, userID, contentID, kind string, activate bool) (active bool, delta int64, err error)
}

type interactionRepository struct {
    db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
    return &interactionRepository{db: db}
}

func (r *interactionRepository) ActiveRecords(ctx context.Context, userID string, contentIDs []string, kinds []string) ([]*model.Interaction, error) {
    if len(contentIDs) == 0 {
        return nil, nil
    }
    var recs []*model.Interaction
    err := r.db.WithContext(ctx).
        Where("user_id = ? AND content_id IN ? AND kind IN ? AND active = ?", userID, contentIDs, kinds, true).
        Find(&recs).Error
    if err != nil {
        return nil, errs.Unavailablef(err)
    }
    return recs, nil
}

func (r *interactionRepository) Toggle(ctx context.Context, userID, contentID, kind string, activate bool) (bool, int64, error) {
    var (
        active bool
        delta  int64
    )
    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        var rec model.Interaction
        // 行锁串行化同一 (user, content, kind) 上的并发切换
        err := lockForUpdate(tx).
            Where("user_id = ? AND content_id = ? AND kind = ?", userID, contentID, kind).
            First(&rec).Error

        switch {
        case errors.Is(err, gorm.ErrRecordNotFound):
            // 无记录视作 INACTIVE
            if !activate {
                active, delta = false, 0
                return nil
            }
            rec = model.Interaction{
                ID:        uuid.New().String(),
                UserID:    userID,
                ContentID: contentID,
                Kind:      kind,
                Active:    true,
            }
            if cErr := tx.Create(&rec).Error; cErr != nil {
                // 并发首次互动撞唯一键，交由上层有限重试
                return fmt.Errorf("%w: concurrent first toggle: %v", errs.ErrConflict, cErr)
            }
            active, delta = true, 1

        case err != nil:
            return errs.Unavailablef(err)

        default:
            if rec.Active == activate {
                // 幂等：重复操作不再变更计数
                active, delta = rec.Active, 0
                return nil
            }
            if uErr := tx.Model(&model.Interaction{}).Where("id = ?", rec.ID).
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
            if iErr := incrementCounterTx(tx, contentID, counterColumns[kind], delta); iErr != nil {
                return iErr
            }
            // 计数变更路径上重算热度分；读路径只消费最近一次计算值
            if sErr := refreshHotScoreTx(tx, contentID); sErr != nil {
                return sErr
            }
        }
        return nil
    })
    if err != nil {
        return false, 0, err
    }
    return active, delta, nil
}

// refreshHotScoreTx 用最新计数重算并回写 hot_score
func refreshHotScoreTx(tx *gorm.DB, contentID string) error {
    var c model.Content
    if err := tx.Where("id = ?", contentID).First(&c).Error; err != nil {
        return errs.Unavailablef(err)
    }
    score := rank.HotScoreAt(rank.Counters{
        Like:    c.LikeCount,
        Comment: c.CommentCount,
        Share:   c.ShareCount,
        View:    c.ViewCount,
    }, c.CreatedAt, time.Now())
    if err := tx.Model(&model.Content{}).Where("id = ?", c.ID).
        UpdateColumn("hot_score", score).Error; err != nil {
        return errs.Unavailablef(err)
    }
    return nil
}
