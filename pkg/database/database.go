package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/model"
)

// InitDB 按配置初始化 gorm 连接并迁移表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "sqlite":
        dialector = sqlite.Open(cfg.Database.Path)
    case "postgres":
        dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
            cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
            cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode)
        dialector = postgres.Open(dsn)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }

    db, err := gorm.Open(dialector, &gorm.Config{
        Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
        TranslateError: true,
    })
    if err != nil {
        return nil, err
    }

    sqlDB, err := db.DB()
    if err != nil {
        return nil, err
    }
    if cfg.Database.MaxOpenConns > 0 {
        sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
    }
    if cfg.Database.MaxIdleConns > 0 {
        sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
    }

    if err := db.AutoMigrate(
        &model.User{},
        &model.Content{},
        &model.Follow{},
        &model.Interaction{},
    ); err != nil {
        return nil, err
    }
    return db, nil
}
