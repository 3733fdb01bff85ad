package feed

import (
    "time"

    "github.com/xiangyu-lab/discover-feed/internal/rank"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// Tab 信息流页签
type Tab string

const (
    TabHot       Tab = "hot"
    TabFollowing Tab = "following"
    TabNearby    Tab = "nearby"
)

// Order 查询计划的排序方式
type Order int

const (
    // OrderHot 热度排序：(hot_score DESC, created_at DESC, id DESC)
    OrderHot Order = iota + 1
    // OrderLatest 时间排序：(created_at DESC, id DESC)
    OrderLatest
    // OrderNearbyHot 附近页默认：(hot_score DESC, distance ASC, id ASC)
    OrderNearbyHot
    // OrderNearbyDistance 附近页纯距离：(distance ASC, id ASC)
    OrderNearbyDistance
)

// Request 构建查询计划的入参
type Request struct {
    Tab      Tab
    ViewerID string

    ContentTypes []string
    Since        *time.Time
    Until        *time.Time

    // 附近页
    Origin       *rank.Coordinate
    RadiusKm     float64
    DistanceOnly bool // 纯 distance ASC 排序
}

// Plan 不可变的查询计划：过滤谓词 + 排序。
// 由各页签策略生成，存储层据此拼装查询，彼此不再散布分支。
type Plan struct {
    Tab   Tab
    Order Order

    ContentTypes []string
    Since        *time.Time
    Until        *time.Time

    // following：作者集合；Empty 表示关注集为空，直接短路返回空页
    AuthorIDs []string
    Empty     bool

    // nearby：地理过滤在候选查询后应用
    RequireGeo bool
    Origin     rank.Coordinate
    RadiusKm   float64
}

// BuildPlan 按页签生成查询计划。
// following 缺 viewer、nearby 缺坐标属调用方契约违规，返回 InvalidArgument
// 而非静默空页，客户端需要区分“无数据”与“请求不完整”。
func BuildPlan(req Request, activeFollowees []string) (Plan, error) {
    base := Plan{
        Tab:          req.Tab,
        ContentTypes: req.ContentTypes,
        Since:        req.Since,
        Until:        req.Until,
    }

    switch req.Tab {
    case TabHot:
        base.Order = OrderHot
        return base, nil

    case TabFollowing:
        if req.ViewerID == "" {
            return Plan{}, errs.InvalidArgumentf("following tab requires viewer id")
        }
        base.Order = OrderLatest
        if len(activeFollowees) == 0 {
            // 关注集为空：不发查询。空 IN 列表既浪费也有方言歧义
            base.Empty = true
            return base, nil
        }
        base.AuthorIDs = activeFollowees
        return base, nil

    case TabNearby:
        if req.Origin == nil {
            return Plan{}, errs.InvalidArgumentf("nearby tab requires origin coordinates")
        }
        if req.RadiusKm <= 0 {
            return Plan{}, errs.InvalidArgumentf("nearby tab requires positive radius")
        }
        base.RequireGeo = true
        base.Origin = *req.Origin
        base.RadiusKm = req.RadiusKm
        if req.DistanceOnly {
            base.Order = OrderNearbyDistance
        } else {
            base.Order = OrderNearbyHot
        }
        return base, nil

    default:
        return Plan{}, errs.InvalidArgumentf("unknown tab %q", string(req.Tab))
    }
}
