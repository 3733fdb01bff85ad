package main

import (
    "context"
    "fmt"
    "math"
    "math/rand"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/google/uuid"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/feed"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/internal/service"
    "github.com/xiangyu-lab/discover-feed/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))

    contentRepo := repository.NewContentRepository(db)
    followRepo := repository.NewFollowRepository(db)
    interactionRepo := repository.NewInteractionRepository(db)
    userRepo := repository.NewUserRepository(db)
    feedSvc := service.NewFeedService(contentRepo, followRepo, interactionRepo, userRepo, nil, cfg.Feed)

    ctx := context.Background()

    N := 20000 // content rows
    PAGES := 200
    PAGE := 20
    if s := os.Getenv("N"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { N = v } }
    if s := os.Getenv("PAGES"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { PAGES = v } }
    if s := os.Getenv("PAGE"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { PAGE = v } }

    // seed authors + content with random counters/ages/coords
    authors := make([]model.User, 100)
    for i := range authors {
        id := uuid.New().String()
        authors[i] = model.User{ID: id, Username: "u" + id[:8], Password: "p", Nickname: "u" + id[:4]}
    }
    _ = db.CreateInBatches(&authors, 100).Error

    rows := make([]model.Content, 0, N)
    now := time.Now()
    for i := 0; i < N; i++ {
        lat := 30.0 + rand.Float64()*2
        lng := 120.0 + rand.Float64()*2
        c := model.Content{
            ID:          uuid.New().String(),
            AuthorID:    authors[rand.Intn(len(authors))].ID,
            Title:       fmt.Sprintf("content-%d", i),
            ContentType: model.ContentTypeImage,
            LikeCount:   int64(rand.Intn(1000)),
            ViewCount:   int64(rand.Intn(50000)),
            Latitude:    &lat,
            Longitude:   &lng,
            Status:      model.ContentStatusPublished,
            AuditStatus: model.AuditStatusApproved,
            CreatedAt:   now.Add(-time.Duration(rand.Intn(72)) * time.Hour),
        }
        rows = append(rows, c)
        if len(rows) == 1000 {
            _ = db.Create(&rows).Error
            rows = rows[:0]
        }
    }
    if len(rows) > 0 { _ = db.Create(&rows).Error }

    // walk the hot feed PAGES times from the first page
    durs := make([]time.Duration, 0, PAGES)
    cursor := ""
    fetched := 0
    for i := 0; i < PAGES; i++ {
        t0 := time.Now()
        page, err := feedSvc.GetFeed(ctx, service.FeedRequest{Tab: feed.TabHot, Cursor: cursor, Limit: PAGE})
        if err != nil { panic(err) }
        durs = append(durs, time.Since(t0))
        fetched += len(page.Items)
        if !page.HasMore { break }
        cursor = page.NextCursor
    }

    fmt.Printf("hot feed: pages=%d items=%d p50=%v p99=%v max=%v\n",
        len(durs), fetched, pct(durs, 0.50), pct(durs, 0.99), pct(durs, 1.0))
}
