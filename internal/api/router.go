package api

import (
    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
    "golang.org/x/time/rate"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/api/handler"
    "github.com/xiangyu-lab/discover-feed/internal/api/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)
    r := gin.New()
    r.Use(gin.Logger(), gin.Recovery())
    r.Use(otelgin.Middleware("discover-feed"))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(middleware.RateLimit(rate.Limit(100), 200))
    if cfg.Sentry.DSN != "" {
        r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    }

    r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    secret := cfg.JWT.Secret
    v1 := r.Group("/api/v1")
    {
        auth := v1.Group("/auth")
        {
            auth.POST("/register", h.Register)
            auth.POST("/login", h.Login)
        }

        // 信息流允许匿名浏览
        v1.GET("/feed", middleware.OptionalAuth(secret), h.GetFeed)

        contents := v1.Group("/contents")
        {
            contents.POST("", middleware.RequireAuth(secret), h.Publish)
            contents.POST("/:id/like", middleware.RequireAuth(secret), h.ToggleLike)
            contents.POST("/:id/collect", middleware.RequireAuth(secret), h.ToggleCollect)
            contents.POST("/:id/view", h.View)
        }

        relations := v1.Group("/relations")
        {
            relations.POST("/follow", middleware.RequireAuth(secret), h.Follow)
            relations.POST("/unfollow", middleware.RequireAuth(secret), h.Unfollow)
            relations.GET("/:user_id/following", h.ListFollowing)
            relations.GET("/:user_id/fans", h.ListFans)
        }
    }
    return r
}
