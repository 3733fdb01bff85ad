package repository

import (
    "testing"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/xiangyu-lab/discover-feed/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
        Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
        TranslateError: true,
    })
    if err != nil {
        t.Fatalf("open db: %v", err)
    }
    if err := db.AutoMigrate(&model.User{}, &model.Content{}, &model.Follow{}, &model.Interaction{}); err != nil {
        t.Fatalf("migrate: %v", err)
    }
    return db
}
