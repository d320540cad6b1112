package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/config"
)

// New returns a JSON logger in production and a console logger elsewhere.
// Every entry carries the environment name.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	env := cfg.Env
	if env == "" {
		env = "local"
	}

	return zcfg.Build(zap.Fields(zap.String("env", env)))
}
