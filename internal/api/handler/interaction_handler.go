package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/xiangyu-lab/discover-feed/internal/api/middleware"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

type toggleRequest struct {
    Action string `json:"action" binding:"required,oneof=activate deactivate"`
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞切换（幂等）
// @Tags 互动
// @Accept json
// @Produce json
// @Param id path string true "内容ID"
// @Param request body toggleRequest true "动作"
// @Success 200 {object} response.Response{data=service.ToggleResult}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/contents/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
    h.toggle(c, model.InteractionKindLike)
}

// ToggleCollect 收藏/取消收藏
// @Summary 收藏切换（幂等）
// @Tags 互动
// @Accept json
// @Produce json
// @Param id path string true "内容ID"
// @Param request body toggleRequest true "动作"
// @Success 200 {object} response.Response{data=service.ToggleResult}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/contents/{id}/collect [post]
func (h *Handler) ToggleCollect(c *gin.Context) {
    h.toggle(c, model.InteractionKindCollect)
}

func (h *Handler) toggle(c *gin.Context, kind string) {
    var req toggleRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    res, err := h.interactionService.Toggle(
        c.Request.Context(),
        middleware.ViewerID(c),
        c.Param("id"),
        kind,
        req.Action,
    )
    if err != nil {
        response.Error(c, err)
        return
    }
    response.Success(c, res)
}
