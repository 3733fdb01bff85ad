package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/xiangyu-lab/discover-feed/internal/api/middleware"
    "github.com/xiangyu-lab/discover-feed/internal/service"
    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

type publishRequest struct {
    Title       string   `json:"title" binding:"required,max=128"`
    Body        string   `json:"body"`
    ContentType string   `json:"content_type" binding:"required,oneof=image video text"`
    Tags        []string `json:"tags"`
    MediaURLs   []string `json:"media_urls"`
    Lat         *float64 `json:"lat"`
    Lng         *float64 `json:"lng"`
}

// Publish 发布内容
// @Summary 发布内容
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body publishRequest true "内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/contents [post]
func (h *Handler) Publish(c *gin.Context) {
    var req publishRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    content, err := h.contentService.Publish(c.Request.Context(), service.PublishInput{
        AuthorID:    middleware.ViewerID(c),
        Title:       req.Title,
        Body:        req.Body,
        ContentType: req.ContentType,
        Tags:        req.Tags,
        MediaURLs:   req.MediaURLs,
        Lat:         req.Lat,
        Lng:         req.Lng,
    })
    if err != nil {
        response.Error(c, err)
        return
    }
    response.Success(c, content)
}

// View 浏览上报（异步合入计数）
// @Summary 浏览上报
// @Tags 内容
// @Param id path string true "内容ID"
// @Success 200 {object} response.Response
// @Router /api/v1/contents/{id}/view [post]
func (h *Handler) View(c *gin.Context) {
    h.contentService.RecordView(c.Param("id"))
    response.Success(c, nil)
}
