package service

import (
    "context"

    "go.uber.org/zap"

    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
    "github.com/xiangyu-lab/discover-feed/pkg/logger"
)

// FollowService 关系链服务。
// 关注边与互动记录同构：每个有序对至多一行，翻转 Active，幂等切换。
// 自关注的拦截在 API 层，引擎不做该校验。
type FollowService interface {
    Toggle(ctx context.Context, followerID, followeeID, action string) (active bool, err error)
    ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
    ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error)
}

type followService struct {
    follows repository.FollowRepository
    users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) FollowService {
    return &followService{follows: follows, users: users}
}

func (s *followService) Toggle(ctx context.Context, followerID, followeeID, action string) (bool, error) {
    if followerID == "" || followeeID == "" {
        return false, errs.InvalidArgumentf("follow toggle requires follower and followee ids")
    }
    activate, err := ParseAction(action)
    if err != nil {
        return false, err
    }
    // 目标用户必须存在
    if _, err := s.users.GetByID(ctx, followeeID); err != nil {
        return false, err
    }

    var active bool
    for attempt := 0; ; attempt++ {
        var tErr error
        active, _, tErr = s.follows.Toggle(ctx, followerID, followeeID, activate)
        if tErr == nil {
            break
        }
        if errs.IsConflict(tErr) && attempt < toggleMaxRetries {
            continue
        }
        return false, tErr
    }

    logger.Debug("follow toggled",
        zap.String("follower", followerID),
        zap.String("followee", followeeID),
        zap.Bool("active", active),
    )
    return active, nil
}

func (s *followService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := normalizePage(page, pageSize)
    items, err := s.follows.ListFollowing(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FolloweeID
    }
    return res, nil
}

func (s *followService) ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := normalizePage(page, pageSize)
    items, err := s.follows.ListFans(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FollowerID
    }
    return res, nil
}

func normalizePage(page, pageSize int) (offset, limit int) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 10
    }
    return (page - 1) * pageSize, pageSize
}
