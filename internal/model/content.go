package model

import (
    "time"

    "gorm.io/gorm"
)

// 内容状态
const (
    ContentStatusDraft     = "draft"
    ContentStatusPublished = "published"
    ContentStatusOffline   = "offline"
)

// 审核状态
const (
    AuditStatusPending  = "pending"
    AuditStatusApproved = "approved"
    AuditStatusRejected = "rejected"
)

// 内容类型
const (
    ContentTypeImage = "image"
    ContentTypeVideo = "video"
    ContentTypeText  = "text"
)

// Content 瀑布流内容主体
type Content struct {
    ID          string `gorm:"primaryKey;type:varchar(36)"`
    AuthorID    string `gorm:"type:varchar(36);index:idx_content_author;not null"`
    Title       string `gorm:"type:varchar(128)"`
    Body        string `gorm:"type:text"`
    ContentType string `gorm:"type:varchar(16);index;not null"`

    // 标签与媒体地址在模型内是结构化字段，仅在存储边界序列化为 JSON
    Tags      []string `gorm:"serializer:json;type:text"`
    MediaURLs []string `gorm:"serializer:json;type:text"`

    // 互动计数，约束为非负
    LikeCount    int64 `gorm:"not null;default:0"`
    CommentCount int64 `gorm:"not null;default:0"`
    ShareCount   int64 `gorm:"not null;default:0"`
    ViewCount    int64 `gorm:"not null;default:0"`
    CollectCount int64 `gorm:"not null;default:0"`

    // 可选地理坐标；无坐标的内容不参与附近页
    Latitude  *float64
    Longitude *float64

    // 热度分：计数变更路径上重算的“最近一次计算值”，读路径不实时重算
    HotScore float64 `gorm:"index:idx_content_hot,sort:desc"`

    Status      string `gorm:"type:varchar(16);index;not null;default:draft"`
    AuditStatus string `gorm:"type:varchar(16);index;not null;default:pending"`

    CreatedAt time.Time `gorm:"index:idx_content_created,sort:desc"`
    UpdatedAt time.Time
    DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Content) TableName() string { return "contents" }

// FeedEligible 可进入信息流：已发布 + 审核通过（软删除由 gorm 过滤）
func (c *Content) FeedEligible() bool {
    return c.Status == ContentStatusPublished && c.AuditStatus == AuditStatusApproved
}

// HasCoordinates 是否携带地理坐标
func (c *Content) HasCoordinates() bool {
    return c.Latitude != nil && c.Longitude != nil
}
