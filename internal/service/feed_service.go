package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/cache"
    "github.com/xiangyu-lab/discover-feed/internal/feed"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/rank"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/logger"
)

// FeedRequest 信息流请求
type FeedRequest struct {
    Tab      feed.Tab
    ViewerID string // 空串表示匿名
    Cursor   string
    Limit    int

    ContentTypes []string
    Since        *time.Time
    Until        *time.Time

    Lat          *float64
    Lng          *float64
    RadiusKm     float64
    DistanceOnly bool
}

// AuthorSummary 作者摘要（读取时从用户表批量装配的弱引用投影）
type AuthorSummary struct {
    ID            string `json:"id"`
    Nickname      string `json:"nickname"`
    Avatar        string `json:"avatar"`
    FollowerCount int64  `json:"follower_count"`
    Followed      bool   `json:"followed"`
}

// FeedItem 信息流条目：内容 + 作者摘要 + viewer 互动状态
type FeedItem struct {
    Content    *model.Content `json:"content"`
    Author     AuthorSummary  `json:"author"`
    Liked      bool           `json:"liked"`
    Collected  bool           `json:"collected"`
    DistanceKm *float64       `json:"distance_km,omitempty"`
}

// FeedPage 一页结果与续页游标
type FeedPage struct {
    Items      []FeedItem `json:"items"`
    NextCursor string     `json:"next_cursor,omitempty"`
    HasMore    bool       `json:"has_more"`
}

type FeedService interface {
    GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error)
}

type feedService struct {
    contents     repository.ContentRepository
    follows      repository.FollowRepository
    interactions repository.InteractionRepository
    users        repository.UserRepository
    scores       *cache.ScoreCache // 可为 nil（无 redis 时）
    cfg          config.FeedConfig
}

func NewFeedService(
    contents repository.ContentRepository,
    follows repository.FollowRepository,
    interactions repository.InteractionRepository,
    users repository.UserRepository,
    scores *cache.ScoreCache,
    cfg config.FeedConfig,
) FeedService {
    return &feedService{
        contents:     contents,
        follows:      follows,
        interactions: interactions,
        users:        users,
        scores:       scores,
        cfg:          cfg,
    }
}

func (s *feedService) GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error) {
    limit := s.clampLimit(req.Limit)

    // following 页先取有效关注集；viewer 缺失的校验在 BuildPlan 内统一处理
    var followees []string
    if req.Tab == feed.TabFollowing && req.ViewerID != "" {
        var err error
        followees, err = s.follows.ActiveFolloweeIDs(ctx, req.ViewerID)
        if err != nil {
            return nil, err
        }
    }

    planReq := feed.Request{
        Tab:          req.Tab,
        ViewerID:     req.ViewerID,
        ContentTypes: req.ContentTypes,
        Since:        req.Since,
        Until:        req.Until,
        RadiusKm:     req.RadiusKm,
        DistanceOnly: req.DistanceOnly,
    }
    if req.Lat != nil && req.Lng != nil {
        planReq.Origin = &rank.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
    }
    if planReq.Tab == feed.TabNearby && planReq.RadiusKm <= 0 && planReq.Origin != nil {
        planReq.RadiusKm = s.cfg.DefaultRadiusKm
    }

    plan, err := feed.BuildPlan(planReq, followees)
    if err != nil {
        return nil, err
    }

    // 关注集为空：不发内容查询，直接空页
    if plan.Empty {
        return &FeedPage{Items: []FeedItem{}, HasMore: false}, nil
    }

    cur, err := feed.DecodeCursor(req.Cursor, plan.Order)
    if err != nil {
        return nil, err
    }

    var (
        items     []*model.Content
        distances map[string]float64
        hasMore   bool
        next      string
    )

    if plan.RequireGeo {
        items, distances, hasMore, next, err = s.nearbyPage(ctx, plan, cur, limit)
    } else {
        items, hasMore, next, err = s.orderedPage(ctx, plan, cur, limit)
    }
    if err != nil {
        return nil, err
    }

    page, err := s.assemble(ctx, req.ViewerID, items, distances)
    if err != nil {
        return nil, err
    }
    page.HasMore = hasMore
    if hasMore {
        page.NextCursor = next
    }
    return page, nil
}

// orderedPage 热门/关注页：游标谓词下推到存储，取 limit+1 判定 hasMore
func (s *feedService) orderedPage(ctx context.Context, plan feed.Plan, cur *feed.Cursor, limit int) ([]*model.Content, bool, string, error) {
    rows, err := s.contents.QueryPage(ctx, plan, cur, limit+1)
    if err != nil {
        return nil, false, "", err
    }
    hasMore := len(rows) > limit
    if hasMore {
        rows = rows[:limit]
    }
    var next string
    if hasMore && len(rows) > 0 {
        last := rows[len(rows)-1]
        nano := last.CreatedAt.UnixNano()
        c := feed.Cursor{CreatedAt: &nano, ID: last.ID}
        if plan.Order == feed.OrderHot {
            score := last.HotScore
            c.Score = &score
        }
        next = feed.EncodeCursor(c)
    }
    return rows, hasMore, next, nil
}

// nearbyPage 附近页：候选集查询 + 半径过滤 + 内存游标分页
func (s *feedService) nearbyPage(ctx context.Context, plan feed.Plan, cur *feed.Cursor, limit int) ([]*model.Content, map[string]float64, bool, string, error) {
    candidates, err := s.contents.QueryNearbyCandidates(ctx, plan, s.scanLimit())
    if err != nil {
        return nil, nil, false, "", err
    }
    located := feed.FilterNearby(candidates, plan)
    page, hasMore := feed.PageNearby(located, cur, limit, plan.Order)

    items := make([]*model.Content, len(page))
    distances := make(map[string]float64, len(page))
    for i, it := range page {
        items[i] = it.Content
        distances[it.Content.ID] = it.Distance
    }
    var next string
    if hasMore && len(page) > 0 {
        next = feed.EncodeCursor(feed.NearbyCursor(page[len(page)-1], plan.Order))
    }
    return items, distances, hasMore, next, nil
}

// assemble 装配响应：互动状态、关注边、作者摘要各一次批量查询，
// 查询次数与页大小无关。匿名 viewer 跳过状态解析，全部为 false。
func (s *feedService) assemble(ctx context.Context, viewerID string, items []*model.Content, distances map[string]float64) (*FeedPage, error) {
    contentIDs := make([]string, len(items))
    authorSet := make(map[string]struct{}, len(items))
    authorIDs := make([]string, 0, len(items))
    for i, it := range items {
        contentIDs[i] = it.ID
        if _, ok := authorSet[it.AuthorID]; !ok {
            authorSet[it.AuthorID] = struct{}{}
            authorIDs = append(authorIDs, it.AuthorID)
        }
    }

    liked := map[string]bool{}
    collected := map[string]bool{}
    followed := map[string]bool{}
    if viewerID != "" && len(items) > 0 {
        recs, err := s.interactions.ActiveRecords(ctx, viewerID, contentIDs,
            []string{model.InteractionKindLike, model.InteractionKindCollect})
        if err != nil {
            return nil, err
        }
        for _, rec := range recs {
            switch rec.Kind {
            case model.InteractionKindLike:
                liked[rec.ContentID] = true
            case model.InteractionKindCollect:
                collected[rec.ContentID] = true
            }
        }
        edges, err := s.follows.Edges(ctx, viewerID, authorIDs)
        if err != nil {
            return nil, err
        }
        for _, e := range edges {
            followed[e.FolloweeID] = true
        }
    }

    authors := map[string]*model.User{}
    if len(authorIDs) > 0 {
        users, err := s.users.GetByIDs(ctx, authorIDs)
        if err != nil {
            return nil, err
        }
        for _, u := range users {
            authors[u.ID] = u
        }
    }

    // 旁路缓存里的计数快照更接近最近一次变更，命中则覆盖展示值
    snaps := map[string]cache.ScoreSnapshot{}
    if s.scores != nil && len(contentIDs) > 0 {
        if m, err := s.scores.GetBatch(ctx, contentIDs); err == nil {
            snaps = m
        } else {
            logger.Warn("score cache batch read failed", zap.Error(err))
        }
    }

    out := make([]FeedItem, len(items))
    for i, it := range items {
        if snap, ok := snaps[it.ID]; ok {
            it.LikeCount = snap.LikeCount
            it.CollectCount = snap.CollectCount
            it.HotScore = snap.HotScore
        }
        item := FeedItem{
            Content:   it,
            Liked:     liked[it.ID],
            Collected: collected[it.ID],
        }
        if d, ok := distances[it.ID]; ok {
            dd := d
            item.DistanceKm = &dd
        }
        if u, ok := authors[it.AuthorID]; ok {
            item.Author = AuthorSummary{
                ID:            u.ID,
                Nickname:      u.Nickname,
                Avatar:        u.Avatar,
                FollowerCount: u.FollowerCount,
                Followed:      followed[u.ID],
            }
        } else {
            item.Author = AuthorSummary{ID: it.AuthorID}
        }
        out[i] = item
    }
    return &FeedPage{Items: out}, nil
}

func (s *feedService) clampLimit(limit int) int {
    if limit <= 0 {
        if s.cfg.DefaultPageSize > 0 {
            return s.cfg.DefaultPageSize
        }
        return 20
    }
    max := s.cfg.MaxPageSize
    if max <= 0 {
        max = 50
    }
    if limit > max {
        return max
    }
    return limit
}

func (s *feedService) scanLimit() int {
    if s.cfg.NearbyScanLimit > 0 {
        return s.cfg.NearbyScanLimit
    }
    return 500
}
