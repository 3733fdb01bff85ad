package feed

import (
    "sort"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/rank"
)

// Located 附近页条目：内容 + 与 origin 的距离
type Located struct {
    Content  *model.Content
    Distance float64
}

// FilterNearby 对候选集做半径过滤并按计划排序。
// 无坐标的内容直接排除，绝不按距离 0 兜底。
func FilterNearby(items []*model.Content, plan Plan) []Located {
    out := make([]Located, 0, len(items))
    for _, it := range items {
        if !it.HasCoordinates() {
            continue
        }
        ok, d := rank.WithinRadius(plan.Origin, plan.RadiusKm, rank.Coordinate{Lat: *it.Latitude, Lng: *it.Longitude})
        if !ok {
            continue
        }
        out = append(out, Located{Content: it, Distance: d})
    }

    sort.Slice(out, func(i, j int) bool {
        a, b := out[i], out[j]
        if plan.Order == OrderNearbyHot {
            if a.Content.HotScore != b.Content.HotScore {
                return a.Content.HotScore > b.Content.HotScore
            }
        }
        if a.Distance != b.Distance {
            return a.Distance < b.Distance
        }
        return a.Content.ID < b.Content.ID
    })
    return out
}

// PageNearby 在已排序的过滤结果上应用游标与页大小。
// 游标语义为“严格位于该排序位置之后”，用完整元组比较避免重复/漏项。
func PageNearby(sorted []Located, cur *Cursor, limit int, order Order) (page []Located, hasMore bool) {
    start := 0
    if cur != nil {
        for i, it := range sorted {
            if afterCursor(it, cur, order) {
                start = i
                break
            }
            start = i + 1
        }
    }
    end := start + limit
    if end >= len(sorted) {
        return sorted[start:], false
    }
    return sorted[start:end], true
}

func afterCursor(it Located, cur *Cursor, order Order) bool {
    if order == OrderNearbyHot {
        if it.Content.HotScore != *cur.Score {
            return it.Content.HotScore < *cur.Score
        }
    }
    if it.Distance != *cur.Distance {
        return it.Distance > *cur.Distance
    }
    return it.Content.ID > cur.ID
}

// NearbyCursor 生成某条目的续页游标
func NearbyCursor(it Located, order Order) Cursor {
    c := Cursor{ID: it.Content.ID, Distance: &it.Distance}
    if order == OrderNearbyHot {
        s := it.Content.HotScore
        c.Score = &s
    }
    return c
}
