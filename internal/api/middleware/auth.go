package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"

    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

const viewerKey = "viewer_id"

// ViewerID 从请求上下文取 viewer；匿名返回空串
func ViewerID(c *gin.Context) string {
    return c.GetString(viewerKey)
}

// OptionalAuth 解析 Bearer token 注入 viewer；缺失或无效按匿名放行。
// 信息流允许匿名浏览，互动状态此时全为 false。
func OptionalAuth(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        if id, ok := parseViewer(c, secret); ok {
            c.Set(viewerKey, id)
        }
        c.Next()
    }
}

// RequireAuth 互动/发布等写操作要求已登录 viewer
func RequireAuth(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        id, ok := parseViewer(c, secret)
        if !ok {
            response.Unauthorized(c, "authentication required")
            c.Abort()
            return
        }
        c.Set(viewerKey, id)
        c.Next()
    }
}

func parseViewer(c *gin.Context, secret string) (string, bool) {
    header := c.GetHeader("Authorization")
    if !strings.HasPrefix(header, "Bearer ") {
        return "", false
    }
    raw := strings.TrimPrefix(header, "Bearer ")

    var claims jwt.RegisteredClaims
    token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil || !token.Valid || claims.Subject == "" {
        return "", false
    }
    return claims.Subject, true
}
