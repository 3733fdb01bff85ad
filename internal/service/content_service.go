package service

import (
    "context"
    "time"

    "github.com/google/uuid"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// PublishInput 发布内容入参
type PublishInput struct {
    AuthorID    string
    Title       string
    Body        string
    ContentType string
    Tags        []string
    MediaURLs   []string
    Lat         *float64
    Lng         *float64
}

// ContentService 内容发布与浏览上报。
// 引擎只通过计数增量和状态迁移修改内容，发布之外不做其它变更。
type ContentService interface {
    Publish(ctx context.Context, in PublishInput) (*model.Content, error)
    // RecordView 浏览上报：异步合入 view_count，见 ViewRecorder
    RecordView(contentID string)
}

type contentService struct {
    contents repository.ContentRepository
    views    *ViewRecorder // 可为 nil
}

func NewContentService(contents repository.ContentRepository, views *ViewRecorder) ContentService {
    return &contentService{contents: contents, views: views}
}

func (s *contentService) Publish(ctx context.Context, in PublishInput) (*model.Content, error) {
    if in.AuthorID == "" {
        return nil, errs.InvalidArgumentf("publish requires author id")
    }
    switch in.ContentType {
    case model.ContentTypeImage, model.ContentTypeVideo, model.ContentTypeText:
    default:
        return nil, errs.InvalidArgumentf("unknown content type %q", in.ContentType)
    }
    if (in.Lat == nil) != (in.Lng == nil) {
        return nil, errs.InvalidArgumentf("latitude and longitude must be set together")
    }

    now := time.Now()
    c := &model.Content{
        ID:          uuid.New().String(),
        AuthorID:    in.AuthorID,
        Title:       in.Title,
        Body:        in.Body,
        ContentType: in.ContentType,
        Tags:        in.Tags,
        MediaURLs:   in.MediaURLs,
        Latitude:    in.Lat,
        Longitude:   in.Lng,
        Status:      model.ContentStatusPublished,
        AuditStatus: model.AuditStatusApproved,
        CreatedAt:   now,
        UpdatedAt:   now,
    }
    if err := s.contents.Create(ctx, c); err != nil {
        return nil, errs.Unavailablef(err)
    }
    return c, nil
}

func (s *contentService) RecordView(contentID string) {
    if s.views != nil {
        s.views.Enqueue(contentID)
    }
}
