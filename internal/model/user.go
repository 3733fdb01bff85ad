package model

import "time"

// User 用户（作者摘要在读取时从此表批量装配）
type User struct {
    ID            string `gorm:"primaryKey;type:varchar(36)"`
    Username      string `gorm:"type:varchar(64);uniqueIndex;not null"`
    Password      string `gorm:"type:varchar(128);not null"`
    Nickname      string `gorm:"type:varchar(64)"`
    Avatar        string `gorm:"type:varchar(256)"`
    FollowerCount int64  `gorm:"not null;default:0"`
    CreatedAt     time.Time
    UpdatedAt     time.Time
}

func (User) TableName() string { return "users" }
