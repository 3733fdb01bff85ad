package response

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// Response 统一响应结构
type Response struct {
    Code    int         `json:"code"`
    Message string      `json:"message"`
    Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
    c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
    c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
    c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
    c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: msg})
}

func Conflict(c *gin.Context, msg string) {
    c.JSON(http.StatusConflict, Response{Code: http.StatusConflict, Message: msg})
}

func InternalError(c *gin.Context, err error) {
    c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
}

// Error 按错误分类映射 HTTP 状态码
func Error(c *gin.Context, err error) {
    switch {
    case errs.IsInvalidArgument(err):
        BadRequest(c, err.Error())
    case errs.IsNotFound(err):
        NotFound(c, err.Error())
    case errs.IsConflict(err):
        Conflict(c, err.Error())
    case errs.IsUnavailable(err):
        c.JSON(http.StatusServiceUnavailable, Response{Code: http.StatusServiceUnavailable, Message: err.Error()})
    default:
        InternalError(c, err)
    }
}
