package feed

import (
    "fmt"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/rank"
)

func geoContent(id string, lat, lng float64, score float64) *model.Content {
    return &model.Content{ID: id, Latitude: &lat, Longitude: &lng, HotScore: score}
}

func nearbyPlan(order Order, radius float64) Plan {
    return Plan{
        Tab:      TabNearby,
        Order:    order,
        Origin:   rank.Coordinate{Lat: 30, Lng: 120},
        RadiusKm: radius,
    }
}

func TestFilterNearbyExcludesMissingCoordinates(t *testing.T) {
    items := []*model.Content{
        geoContent("c1", 30.001, 120, 1),
        {ID: "c2", HotScore: 99}, // 无坐标：排除，绝不当距离 0
    }
    got := FilterNearby(items, nearbyPlan(OrderNearbyDistance, 10))
    require.Len(t, got, 1)
    assert.Equal(t, "c1", got[0].Content.ID)
}

func TestFilterNearbyExcludesBeyondRadius(t *testing.T) {
    items := []*model.Content{
        geoContent("near", 30.01, 120, 1), // ~1.1 km
        geoContent("far", 31, 120, 1),     // ~111 km
    }
    got := FilterNearby(items, nearbyPlan(OrderNearbyDistance, 5))
    require.Len(t, got, 1)
    assert.Equal(t, "near", got[0].Content.ID)
}

func TestFilterNearbyOrderHotThenDistance(t *testing.T) {
    items := []*model.Content{
        geoContent("lowNear", 30.001, 120, 1),
        geoContent("highFar", 30.05, 120, 9),
        geoContent("highNear", 30.002, 120, 9),
    }
    got := FilterNearby(items, nearbyPlan(OrderNearbyHot, 100))
    require.Len(t, got, 3)
    assert.Equal(t, "highNear", got[0].Content.ID)
    assert.Equal(t, "highFar", got[1].Content.ID)
    assert.Equal(t, "lowNear", got[2].Content.ID)
}

func TestPageNearbyWalkIsCompleteAndDisjoint(t *testing.T) {
    var items []*model.Content
    for i := 0; i < 25; i++ {
        items = append(items, geoContent(fmt.Sprintf("c%02d", i), 30+float64(i)*0.001, 120, 0))
    }
    plan := nearbyPlan(OrderNearbyDistance, 500)
    sorted := FilterNearby(items, plan)

    seen := map[string]int{}
    var cur *Cursor
    for {
        page, hasMore := PageNearby(sorted, cur, 10, plan.Order)
        for _, it := range page {
            seen[it.Content.ID]++
        }
        if !hasMore {
            break
        }
        c := NearbyCursor(page[len(page)-1], plan.Order)
        cur = &c
    }
    require.Len(t, seen, 25)
    for id, n := range seen {
        assert.Equal(t, 1, n, "item %s returned %d times", id, n)
    }
}
