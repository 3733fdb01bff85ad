package handler

import (
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/xiangyu-lab/discover-feed/internal/api/middleware"
    "github.com/xiangyu-lab/discover-feed/internal/feed"
    "github.com/xiangyu-lab/discover-feed/internal/service"
    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

type feedRequest struct {
    Tab          string   `form:"tab" binding:"required,oneof=hot following nearby"`
    Cursor       string   `form:"cursor"`
    Limit        int      `form:"limit"`
    Types        string   `form:"types" binding:"omitempty,typelist"` // 逗号分隔：image,video,text
    Lat          *float64 `form:"lat"`
    Lng          *float64 `form:"lng"`
    RadiusKm     float64  `form:"radius_km"`
    DistanceOnly bool     `form:"distance_only"`
}

// GetFeed 信息流分页
// @Summary 多页签信息流（热门/关注/附近）
// @Tags 信息流
// @Produce json
// @Param tab query string true "页签" Enums(hot, following, nearby)
// @Param cursor query string false "续页游标"
// @Param limit query int false "页大小" default(20)
// @Param types query string false "内容类型过滤，逗号分隔"
// @Param lat query number false "纬度（附近页必填）"
// @Param lng query number false "经度（附近页必填）"
// @Param radius_km query number false "半径 km"
// @Param distance_only query bool false "附近页按纯距离排序"
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Failure 400 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
    var req feedRequest
    if err := c.ShouldBindQuery(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }

    var types []string
    if req.Types != "" {
        types = strings.Split(req.Types, ",")
    }

    page, err := h.feedService.GetFeed(c.Request.Context(), service.FeedRequest{
        Tab:          feed.Tab(req.Tab),
        ViewerID:     middleware.ViewerID(c),
        Cursor:       req.Cursor,
        Limit:        req.Limit,
        ContentTypes: types,
        Lat:          req.Lat,
        Lng:          req.Lng,
        RadiusKm:     req.RadiusKm,
        DistanceOnly: req.DistanceOnly,
    })
    if err != nil {
        response.Error(c, err)
        return
    }
    response.Success(c, page)
}
