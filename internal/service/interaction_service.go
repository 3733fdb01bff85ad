package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/xiangyu-lab/discover-feed/internal/cache"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
    "github.com/xiangyu-lab/discover-feed/pkg/logger"
)

// 切换动作
const (
    ActionActivate   = "activate"
    ActionDeactivate = "deactivate"
)

// 乐观并发冲突的内部重试上限
const toggleMaxRetries = 3

// ParseAction 校验动作取值
func ParseAction(action string) (bool, error) {
    switch action {
    case ActionActivate:
        return true, nil
    case ActionDeactivate:
        return false, nil
    default:
        return false, errs.InvalidArgumentf("action must be %q or %q", ActionActivate, ActionDeactivate)
    }
}

// ToggleResult 切换结果：迁移后状态与目标的最新计数
type ToggleResult struct {
    ContentID    string `json:"content_id"`
    Kind         string `json:"kind"`
    Active       bool   `json:"active"`
    LikeCount    int64  `json:"like_count"`
    CollectCount int64  `json:"collect_count"`
}

type InteractionService interface {
    // Toggle 点赞/收藏切换。幂等：重复 activate/deactivate 不重复变更计数。
    Toggle(ctx context.Context, viewerID, contentID, kind, action string) (*ToggleResult, error)
}

type interactionService struct {
    contents     repository.ContentRepository
    interactions repository.InteractionRepository
    scores       *cache.ScoreCache // 可为 nil
}

func NewInteractionService(
    contents repository.ContentRepository,
    interactions repository.InteractionRepository,
    scores *cache.ScoreCache,
) InteractionService {
    return &interactionService{contents: contents, interactions: interactions, scores: scores}
}

func (s *interactionService) Toggle(ctx context.Context, viewerID, contentID, kind, action string) (*ToggleResult, error) {
    if viewerID == "" {
        return nil, errs.InvalidArgumentf("toggle requires viewer id")
    }
    if contentID == "" {
        return nil, errs.InvalidArgumentf("toggle requires content id")
    }
    if kind != model.InteractionKindLike && kind != model.InteractionKindCollect {
        return nil, errs.InvalidArgumentf("unknown interaction kind %q", kind)
    }
    activate, err := ParseAction(action)
    if err != nil {
        return nil, err
    }

    // 目标必须存在且可进流
    content, err := s.contents.GetByID(ctx, contentID)
    if err != nil {
        return nil, err
    }
    if !content.FeedEligible() {
        return nil, errs.NotFoundf("content %s is not available", contentID)
    }

    var (
        active bool
        delta  int64
    )
    for attempt := 0; ; attempt++ {
        active, delta, err = s.interactions.Toggle(ctx, viewerID, contentID, kind, activate)
        if err == nil {
            break
        }
        if errs.IsConflict(err) && attempt < toggleMaxRetries {
            continue
        }
        return nil, err
    }

    // 回读最新计数用于响应与旁路缓存
    fresh, err := s.contents.GetByID(ctx, contentID)
    if err != nil {
        return nil, err
    }
    if s.scores != nil {
        snap := cache.ScoreSnapshot{
            HotScore:     fresh.HotScore,
            LikeCount:    fresh.LikeCount,
            CollectCount: fresh.CollectCount,
            ComputedAt:   time.Now(),
        }
        if cErr := s.scores.Put(ctx, contentID, snap); cErr != nil {
            logger.Warn("score cache write failed", zap.String("content", contentID), zap.Error(cErr))
        }
    }

    logger.Debug("interaction toggled",
        zap.String("viewer", viewerID),
        zap.String("content", contentID),
        zap.String("kind", kind),
        zap.Bool("active", active),
        zap.Int64("delta", delta),
    )

    return &ToggleResult{
        ContentID:    contentID,
        Kind:         kind,
        Active:       active,
        LikeCount:    fresh.LikeCount,
        CollectCount: fresh.CollectCount,
    }, nil
}
