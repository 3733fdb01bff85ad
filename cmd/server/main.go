package main

import (
    "context"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/xiangyu-lab/discover-feed/config"
    _ "github.com/xiangyu-lab/discover-feed/docs"
    "github.com/xiangyu-lab/discover-feed/internal/api"
    "github.com/xiangyu-lab/discover-feed/internal/api/handler"
    "github.com/xiangyu-lab/discover-feed/internal/cache"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/internal/service"
    "github.com/xiangyu-lab/discover-feed/pkg/database"
    "github.com/xiangyu-lab/discover-feed/pkg/logger"
    "github.com/xiangyu-lab/discover-feed/pkg/tracing"
)

func must[T any](v T, err error) T {
    if err != nil {
        panic(err)
    }
    return v
}

func main() {
    cfg := must(config.Load())
    if err := logger.Init(cfg.Server.Mode); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        }
        defer sentry.Flush(2 * time.Second)
    }

    shutdownTracing := must(tracing.Init(context.Background(), cfg, "discover-feed"))
    defer func() { _ = shutdownTracing(context.Background()) }()

    db := must(database.InitDB(cfg))

    // redis 旁路缓存：连不上时降级为 nil，排序不依赖缓存
    var scores *cache.ScoreCache
    rdb := redis.NewClient(&redis.Options{
        Addr:     cfg.Redis.Addr,
        Password: cfg.Redis.Password,
        DB:       cfg.Redis.DB,
    })
    if err := rdb.Ping(context.Background()).Err(); err != nil {
        logger.Warn("redis unavailable, score cache disabled", zap.Error(err))
    } else {
        scores = cache.NewScoreCache(rdb)
    }

    // repositories
    contentRepo := repository.NewContentRepository(db)
    followRepo := repository.NewFollowRepository(db)
    interactionRepo := repository.NewInteractionRepository(db)
    userRepo := repository.NewUserRepository(db)

    // services
    viewRecorder := service.NewViewRecorder(contentRepo, 10000)
    stopViews := viewRecorder.Start(2)
    feedSvc := service.NewFeedService(contentRepo, followRepo, interactionRepo, userRepo, scores, cfg.Feed)
    interactionSvc := service.NewInteractionService(contentRepo, interactionRepo, scores)
    followSvc := service.NewFollowService(followRepo, userRepo)
    contentSvc := service.NewContentService(contentRepo, viewRecorder)
    userSvc := service.NewUserService(userRepo, cfg.JWT)

    h := handler.New(feedSvc, interactionSvc, followSvc, contentSvc, userSvc)
    router := api.NewRouter(cfg, h)

    srv := &http.Server{
        Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
        Handler: router,
    }

    go func() {
        logger.Info("server starting", zap.String("addr", srv.Addr))
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            logger.Error("server failed", zap.Error(err))
            os.Exit(1)
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    logger.Info("shutting down")
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    _ = srv.Shutdown(ctx)
    _ = stopViews(ctx)
}
