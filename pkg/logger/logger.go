package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Init 初始化全局 logger；mode=release 使用 JSON 输出
func Init(mode string) error {
    var cfg zap.Config
    if mode == "release" {
        cfg = zap.NewProductionConfig()
    } else {
        cfg = zap.NewDevelopmentConfig()
        cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    }
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    log = l
    return nil
}

// L 返回底层 *zap.Logger（用于需要携带固定字段的场景）
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Sync 刷新缓冲日志（进程退出前调用）
func Sync() { _ = log.Sync() }
