package feed

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/xiangyu-lab/discover-feed/internal/rank"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

func TestBuildPlanHot(t *testing.T) {
    plan, err := BuildPlan(Request{Tab: TabHot, ContentTypes: []string{"image"}}, nil)
    require.NoError(t, err)
    assert.Equal(t, OrderHot, plan.Order)
    assert.Equal(t, []string{"image"}, plan.ContentTypes)
    assert.False(t, plan.Empty)
}

func TestBuildPlanFollowingRequiresViewer(t *testing.T) {
    _, err := BuildPlan(Request{Tab: TabFollowing}, nil)
    assert.True(t, errs.IsInvalidArgument(err))
}

func TestBuildPlanFollowingEmptyFollowees(t *testing.T) {
    plan, err := BuildPlan(Request{Tab: TabFollowing, ViewerID: "u1"}, nil)
    require.NoError(t, err)
    assert.True(t, plan.Empty)
    assert.Empty(t, plan.AuthorIDs)
}

func TestBuildPlanFollowing(t *testing.T) {
    plan, err := BuildPlan(Request{Tab: TabFollowing, ViewerID: "u1"}, []string{"a1", "a2"})
    require.NoError(t, err)
    assert.Equal(t, OrderLatest, plan.Order)
    assert.Equal(t, []string{"a1", "a2"}, plan.AuthorIDs)
    assert.False(t, plan.Empty)
}

func TestBuildPlanNearbyRequiresOrigin(t *testing.T) {
    _, err := BuildPlan(Request{Tab: TabNearby, RadiusKm: 10}, nil)
    assert.True(t, errs.IsInvalidArgument(err))
}

func TestBuildPlanNearbyRequiresRadius(t *testing.T) {
    _, err := BuildPlan(Request{Tab: TabNearby, Origin: &rank.Coordinate{Lat: 30, Lng: 120}}, nil)
    assert.True(t, errs.IsInvalidArgument(err))
}

func TestBuildPlanNearby(t *testing.T) {
    origin := &rank.Coordinate{Lat: 30, Lng: 120}
    plan, err := BuildPlan(Request{Tab: TabNearby, Origin: origin, RadiusKm: 10}, nil)
    require.NoError(t, err)
    assert.Equal(t, OrderNearbyHot, plan.Order)
    assert.True(t, plan.RequireGeo)
    assert.Equal(t, 10.0, plan.RadiusKm)

    plan, err = BuildPlan(Request{Tab: TabNearby, Origin: origin, RadiusKm: 10, DistanceOnly: true}, nil)
    require.NoError(t, err)
    assert.Equal(t, OrderNearbyDistance, plan.Order)
}

func TestBuildPlanUnknownTab(t *testing.T) {
    _, err := BuildPlan(Request{Tab: Tab("trending")}, nil)
    assert.True(t, errs.IsInvalidArgument(err))
}
