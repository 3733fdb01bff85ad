package handler

import (
    "github.com/xiangyu-lab/discover-feed/internal/service"
)

// Handler 聚合各业务 handler 的依赖
type Handler struct {
    feedService        service.FeedService
    interactionService service.InteractionService
    followService      service.FollowService
    contentService     service.ContentService
    userService        service.UserService
}

func New(
    feedService service.FeedService,
    interactionService service.InteractionService,
    followService service.FollowService,
    contentService service.ContentService,
    userService service.UserService,
) *Handler {
    return &Handler{
        feedService:        feedService,
        interactionService: interactionService,
        followService:      followService,
        contentService:     contentService,
        userService:        userService,
    }
}
