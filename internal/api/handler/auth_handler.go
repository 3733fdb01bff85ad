package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/xiangyu-lab/discover-feed/pkg/response"
)

type registerRequest struct {
    Username string `json:"username" binding:"required,min=3,max=64"`
    Password string `json:"password" binding:"required,min=6,max=64"`
    Nickname string `json:"nickname" binding:"max=64"`
}

type loginRequest struct {
    Username string `json:"username" binding:"required"`
    Password string `json:"password" binding:"required"`
}

// Register 注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    u, err := h.userService.Register(c.Request.Context(), req.Username, req.Password, req.Nickname)
    if err != nil {
        response.Error(c, err)
        return
    }
    response.Success(c, gin.H{"id": u.ID, "username": u.Username, "nickname": u.Nickname})
}

// Login 登录
// @Summary 用户登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
    if err != nil {
        response.Error(c, err)
        return
    }
    response.Success(c, gin.H{"token": token})
}
