package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局日志实例
var Log *zap.Logger

// InitLogger 初始化 zap 日志
// debug 模式下使用开发配置（彩色、人类可读），生产使用 JSON
func InitLogger(debug bool) {
	var (
		l   *zap.Logger
		err error
	)

	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	Log = l
}

// Sync 刷新缓冲区，main 退出前调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
