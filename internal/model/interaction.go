package model

import "time"

// 互动类型
const (
    InteractionKindLike    = "like"
    InteractionKindCollect = "collect"
)

// Interaction 用户-内容互动记录（点赞/收藏）。
// (user_id, content_id, kind) 至多一行，状态翻转复用同一行，从不删除。
type Interaction struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    UserID    string `gorm:"type:varchar(36);index:idx_inter_user;uniqueIndex:ux_inter_user_content_kind;not null"`
    ContentID string `gorm:"type:varchar(36);index:idx_inter_content;uniqueIndex:ux_inter_user_content_kind;not null"`
    Kind      string `gorm:"type:varchar(16);uniqueIndex:ux_inter_user_content_kind;not null"`
    Active    bool   `gorm:"not null;default:true"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (Interaction) TableName() string { return "interactions" }
