package repository

import (
    "context"
    "errors"
    "time"

    "gorm.io/gorm"

    "github.com/xiangyu-lab/discover-feed/internal/feed"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// 可增减的计数字段白名单
var counterColumns = map[string]string{
    "like":    "like_count",
    "collect": "collect_count",
    "comment": "comment_count",
    "share":   "share_count",
    "view":    "view_count",
}

type ContentRepository interface {
    Create(ctx context.Context, content *model.Content) error
    GetByID(ctx context.Context, id string) (*model.Content, error)
    // QueryPage 执行计划化的分页查询：游标谓词 + 排序 + limit（调用方传 limit+1）
    QueryPage(ctx context.Context, plan feed.Plan, cur *feed.Cursor, limit int) ([]*model.Content, error)
    // QueryNearbyCandidates 取附近页候选集（带坐标、可进流），地理过滤在上层
    QueryNearbyCandidates(ctx context.Context, plan feed.Plan, scanLimit int) ([]*model.Content, error)
    IncrementCounter(ctx context.Context, contentID, counter string, delta int64) error
}

type contentRepository struct {
    db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository { return &contentRepository{db: db} }

func (r *contentRepository) Create(ctx context.Context, content *model.Content) error {
    return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
    var c model.Content
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, errs.NotFoundf("content %s", id)
        }
        return nil, errs.Unavailablef(err)
    }
    return &c, nil
}

// eligible 基础谓词：已发布 + 审核通过（软删除由 gorm 自动过滤）
func (r *contentRepository) eligible(ctx context.Context, plan feed.Plan) *gorm.DB {
    q := r.db.WithContext(ctx).Model(&model.Content{}).
        Where("status = ?", model.ContentStatusPublished).
        Where("audit_status = ?", model.AuditStatusApproved)
    if len(plan.ContentTypes) > 0 {
        q = q.Where("content_type IN ?", plan.ContentTypes)
    }
    if plan.Since != nil {
        q = q.Where("created_at >= ?", *plan.Since)
    }
    if plan.Until != nil {
        q = q.Where("created_at <= ?", *plan.Until)
    }
    if len(plan.AuthorIDs) > 0 {
        q = q.Where("author_id IN ?", plan.AuthorIDs)
    }
    return q
}

func (r *contentRepository) QueryPage(ctx context.Context, plan feed.Plan, cur *feed.Cursor, limit int) ([]*model.Content, error) {
    q := r.eligible(ctx, plan)

    switch plan.Order {
    case feed.OrderHot:
        if cur != nil {
            t := time.Unix(0, *cur.CreatedAt)
            // 严格位于 (score, created_at, id) 排序位置之后
            q = q.Where(
                "hot_score < ? OR (hot_score = ? AND (created_at < ? OR (created_at = ? AND id < ?)))",
                *cur.Score, *cur.Score, t, t, cur.ID,
            )
        }
        q = q.Order("hot_score DESC").Order("created_at DESC").Order("id DESC")
    case feed.OrderLatest:
        if cur != nil {
            t := time.Unix(0, *cur.CreatedAt)
            q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", t, t, cur.ID)
        }
        q = q.Order("created_at DESC").Order("id DESC")
    default:
        return nil, errs.InvalidArgumentf("unsupported order for paged query")
    }

    var items []*model.Content
    if err := q.Limit(limit).Find(&items).Error; err != nil {
        return nil, errs.Unavailablef(err)
    }
    return items, nil
}

func (r *contentRepository) QueryNearbyCandidates(ctx context.Context, plan feed.Plan, scanLimit int) ([]*model.Content, error) {
    q := r.eligible(ctx, plan).
        Where("latitude IS NOT NULL AND longitude IS NOT NULL").
        Order("hot_score DESC").Order("created_at DESC").
        Limit(scanLimit)

    var items []*model.Content
    if err := q.Find(&items).Error; err != nil {
        return nil, errs.Unavailablef(err)
    }
    return items, nil
}

func (r *contentRepository) IncrementCounter(ctx context.Context, contentID, counter string, delta int64) error {
    col, ok := counterColumns[counter]
    if !ok {
        return errs.InvalidArgumentf("unknown counter %q", counter)
    }
    return incrementCounterTx(r.db.WithContext(ctx), contentID, col, delta)
}

// incrementCounterTx 计数增减，负向更新带下限保护，计数永不为负
func incrementCounterTx(tx *gorm.DB, contentID, column string, delta int64) error {
    q := tx.Model(&model.Content{}).Where("id = ?", contentID)
    if delta < 0 {
        q = q.Where(column+" >= ?", -delta)
    }
    res := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta))
    if res.Error != nil {
        return errs.Unavailablef(res.Error)
    }
    return nil
}
