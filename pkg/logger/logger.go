package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-storefront-admin/config"
)

// New builds the process logger. Development mode switches to a console encoder at debug level.
func New(cfg config.LoggerConfig, appEnv string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if appEnv == config.DebugMode {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Encoding == "console" || cfg.Encoding == "json" {
		zapCfg.Encoding = cfg.Encoding
	}
	zapCfg.DisableCaller = cfg.DisableCaller
	zapCfg.DisableStacktrace = cfg.DisableStacktrace
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := zapCfg.Build()
	if err != nil {
		return zap.NewExample()
	}
	return log
}

// OrNop lets components accept a nil logger.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
