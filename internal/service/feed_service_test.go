package service

import (
    "context"
    "fmt"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/cache"
    "github.com/xiangyu-lab/discover-feed/internal/feed"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// ---- 计数型测试替身：断言每页请求的存储往返次数 ----

type fakeContents struct {
    items       []*model.Content
    queryCalls  int
    nearbyCalls int
    lastLimit   int
}

func (f *fakeContents) Create(ctx context.Context, c *model.Content) error { return nil }

func (f *fakeContents) GetByID(ctx context.Context, id string) (*model.Content, error) {
    for _, it := range f.items {
        if it.ID == id {
            return it, nil
        }
    }
    return nil, errs.NotFoundf("content %s", id)
}

func (f *fakeContents) QueryPage(ctx context.Context, plan feed.Plan, cur *feed.Cursor, limit int) ([]*model.Content, error) {
    f.queryCalls++
    f.lastLimit = limit
    if len(f.items) > limit {
        return f.items[:limit], nil
    }
    return f.items, nil
}

func (f *fakeContents) QueryNearbyCandidates(ctx context.Context, plan feed.Plan, scanLimit int) ([]*model.Content, error) {
    f.nearbyCalls++
    return f.items, nil
}

func (f *fakeContents) IncrementCounter(ctx context.Context, contentID, counter string, delta int64) error {
    return nil
}

type fakeFollows struct {
    followees     []string
    edges         map[string]bool
    followeeCalls int
    edgeCalls     int
}

func (f *fakeFollows) Toggle(ctx context.Context, followerID, followeeID string, activate bool) (bool, int64, error) {
    return false, 0, nil
}

func (f *fakeFollows) ActiveFolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
    f.followeeCalls++
    return f.followees, nil
}

func (f *fakeFollows) Edges(ctx context.Context, followerID string, followeeIDs []string) ([]*model.Follow, error) {
    f.edgeCalls++
    var out []*model.Follow
    for _, id := range followeeIDs {
        if f.edges[id] {
            out = append(out, &model.Follow{FollowerID: followerID, FolloweeID: id, Active: true})
        }
    }
    return out, nil
}

func (f *fakeFollows) ListFollowing(ctx context.Context, followerID string, offset, limit int) ([]*model.Follow, error) {
    return nil, nil
}

func (f *fakeFollows) ListFans(ctx context.Context, followeeID string, offset, limit int) ([]*model.Follow, error) {
    return nil, nil
}

type fakeInteractions struct {
    liked       map[string]bool
    activeCalls int
}

func (f *fakeInteractions) ActiveRecords(ctx context.Context, userID string, contentIDs []string, kinds []string) ([]*model.Interaction, error) {
    f.activeCalls++
    var out []*model.Interaction
    for _, id := range contentIDs {
        if f.liked[id] {
            out = append(out, &model.Interaction{UserID: userID, ContentID: id, Kind: model.InteractionKindLike, Active: true})
        }
    }
    return out, nil
}

func (f *fakeInteractions) Toggle(ctx context.Context, userID, contentID, kind string, activate bool) (bool, int64, error) {
    return false, 0, nil
}

type fakeUsers struct {
    users     map[string]*model.User
    byIDCalls int
}

func (f *fakeUsers) Create(ctx context.Context, u *model.User) error { return nil }

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
    if u, ok := f.users[id]; ok {
        return u, nil
    }
    return nil, errs.NotFoundf("user %s", id)
}

func (f *fakeUsers) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
    f.byIDCalls++
    var out []*model.User
    for _, id := range ids {
        if u, ok := f.users[id]; ok {
            out = append(out, u)
        }
    }
    return out, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
    return nil, errs.NotFoundf("user %s", username)
}

func feedCfg() config.FeedConfig {
    return config.FeedConfig{DefaultPageSize: 20, MaxPageSize: 50, DefaultRadiusKm: 50, NearbyScanLimit: 500}
}

func makeItems(n int) []*model.Content {
    items := make([]*model.Content, n)
    base := time.Now()
    for i := 0; i < n; i++ {
        items[i] = &model.Content{
            ID:          fmt.Sprintf("c%03d", i),
            AuthorID:    fmt.Sprintf("a%03d", i%10),
            ContentType: model.ContentTypeImage,
            HotScore:    float64(n - i),
            Status:      model.ContentStatusPublished,
            AuditStatus: model.AuditStatusApproved,
            CreatedAt:   base.Add(-time.Duration(i) * time.Minute),
        }
    }
    return items
}

func TestFeedEmptyFolloweeShortCircuit(t *testing.T) {
    contents := &fakeContents{}
    follows := &fakeFollows{} // 关注集为空
    svc := NewFeedService(contents, follows, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    page, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabFollowing, ViewerID: "u1"})
    require.NoError(t, err)
    assert.Empty(t, page.Items)
    assert.False(t, page.HasMore)
    // 不得发出内容查询
    assert.Zero(t, contents.queryCalls)
    assert.Zero(t, contents.nearbyCalls)
}

func TestFeedFollowingWithoutViewer(t *testing.T) {
    contents := &fakeContents{}
    follows := &fakeFollows{followees: []string{"a1"}}
    svc := NewFeedService(contents, follows, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    _, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabFollowing})
    assert.True(t, errs.IsInvalidArgument(err))
    // 匿名请求连关注集都不查
    assert.Zero(t, follows.followeeCalls)
    assert.Zero(t, contents.queryCalls)
}

func TestFeedBatchResolutionLookupCount(t *testing.T) {
    // 每页各一次：互动记录、关注边、作者装配——与页大小无关
    for _, n := range []int{1, 50} {
        t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
            items := makeItems(n)
            contents := &fakeContents{items: items}
            follows := &fakeFollows{edges: map[string]bool{"a001": true}}
            inters := &fakeInteractions{liked: map[string]bool{items[0].ID: true}}
            users := &fakeUsers{users: map[string]*model.User{}}
            for _, it := range items {
                users.users[it.AuthorID] = &model.User{ID: it.AuthorID, Nickname: it.AuthorID}
            }
            svc := NewFeedService(contents, follows, inters, users, nil, feedCfg())

            page, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot, ViewerID: "u1", Limit: n})
            require.NoError(t, err)
            require.Len(t, page.Items, n)

            assert.Equal(t, 1, inters.activeCalls)
            assert.Equal(t, 1, follows.edgeCalls)
            assert.Equal(t, 1, users.byIDCalls)
            assert.True(t, page.Items[0].Liked)
        })
    }
}

func TestFeedAnonymousSkipsStateLookups(t *testing.T) {
    items := makeItems(5)
    contents := &fakeContents{items: items}
    follows := &fakeFollows{edges: map[string]bool{"a001": true}}
    inters := &fakeInteractions{liked: map[string]bool{items[0].ID: true}}
    users := &fakeUsers{users: map[string]*model.User{}}
    svc := NewFeedService(contents, follows, inters, users, nil, feedCfg())

    page, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot})
    require.NoError(t, err)
    require.Len(t, page.Items, 5)
    // 匿名：零次状态查询，互动位全为 false
    assert.Zero(t, inters.activeCalls)
    assert.Zero(t, follows.edgeCalls)
    for _, it := range page.Items {
        assert.False(t, it.Liked)
        assert.False(t, it.Collected)
        assert.False(t, it.Author.Followed)
    }
}

func TestFeedInvalidCursor(t *testing.T) {
    contents := &fakeContents{items: makeItems(3)}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    _, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot, Cursor: "!!!garbage!!!"})
    assert.True(t, errs.IsInvalidArgument(err))
    assert.Zero(t, contents.queryCalls)
}

func TestFeedLimitClamp(t *testing.T) {
    contents := &fakeContents{items: makeItems(60)}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    _, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot, Limit: 500})
    require.NoError(t, err)
    // 上限 50，hasMore 探测多取一行
    assert.Equal(t, 51, contents.lastLimit)
}

func TestFeedHasMoreAndNextCursor(t *testing.T) {
    contents := &fakeContents{items: makeItems(25)}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    page, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot, Limit: 10})
    require.NoError(t, err)
    require.Len(t, page.Items, 10)
    assert.True(t, page.HasMore)
    require.NotEmpty(t, page.NextCursor)

    cur, err := feed.DecodeCursor(page.NextCursor, feed.OrderHot)
    require.NoError(t, err)
    assert.Equal(t, page.Items[9].Content.ID, cur.ID)
}

func TestFeedNearbyRequiresCoordinates(t *testing.T) {
    contents := &fakeContents{}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    _, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabNearby})
    assert.True(t, errs.IsInvalidArgument(err))
    assert.Zero(t, contents.nearbyCalls)
}

func TestFeedNearbyFilterAndDistance(t *testing.T) {
    lat1, lng1 := 30.01, 120.0 // ~1.1 km
    lat2, lng2 := 31.0, 120.0  // ~111 km
    items := []*model.Content{
        {ID: "near", AuthorID: "a1", Latitude: &lat1, Longitude: &lng1, HotScore: 1,
            Status: model.ContentStatusPublished, AuditStatus: model.AuditStatusApproved},
        {ID: "far", AuthorID: "a1", Latitude: &lat2, Longitude: &lng2, HotScore: 9,
            Status: model.ContentStatusPublished, AuditStatus: model.AuditStatusApproved},
    }
    contents := &fakeContents{items: items}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, nil, feedCfg())

    lat, lng := 30.0, 120.0
    page, err := svc.GetFeed(context.Background(), FeedRequest{
        Tab: feed.TabNearby, Lat: &lat, Lng: &lng, RadiusKm: 5,
    })
    require.NoError(t, err)
    require.Len(t, page.Items, 1)
    assert.Equal(t, "near", page.Items[0].Content.ID)
    require.NotNil(t, page.Items[0].DistanceKm)
    assert.InDelta(t, 1.11, *page.Items[0].DistanceKm, 0.05)
    assert.Equal(t, 1, contents.nearbyCalls)
}

func TestFeedScoreCacheOverridesCounters(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    scores := cache.NewScoreCache(rdb)

    items := makeItems(2)
    items[0].LikeCount = 1 // 存储里的旧值
    require.NoError(t, scores.Put(context.Background(), items[0].ID, cache.ScoreSnapshot{
        HotScore: 42, LikeCount: 7, CollectCount: 3, ComputedAt: time.Now(),
    }))

    contents := &fakeContents{items: items}
    svc := NewFeedService(contents, &fakeFollows{}, &fakeInteractions{}, &fakeUsers{}, scores, feedCfg())

    page, err := svc.GetFeed(context.Background(), FeedRequest{Tab: feed.TabHot})
    require.NoError(t, err)
    require.Len(t, page.Items, 2)
    assert.Equal(t, int64(7), page.Items[0].Content.LikeCount)
    assert.Equal(t, int64(3), page.Items[0].Content.CollectCount)
    // 未命中的条目保持存储值
    assert.Equal(t, int64(0), page.Items[1].Content.LikeCount)
}
