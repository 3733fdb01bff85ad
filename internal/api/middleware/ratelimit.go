package middleware

import (
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

// RateLimit 按客户端 IP 限流
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
    var (
        mu       sync.Mutex
        limiters = make(map[string]*rate.Limiter)
    )
    get := func(ip string) *rate.Limiter {
        mu.Lock()
        defer mu.Unlock()
        l, ok := limiters[ip]
        if !ok {
            l = rate.NewLimiter(rps, burst)
            limiters[ip] = l
        }
        return l
    }
    return func(c *gin.Context) {
        if !get(c.ClientIP()).Allow() {
            c.JSON(http.StatusTooManyRequests, response.Response{
                Code:    http.StatusTooManyRequests,
                Message: "too many requests",
            })
            c.Abort()
            return
        }
        c.Next()
    }
}
