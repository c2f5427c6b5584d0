package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wippyai/michelson/internal/config"
)

// newLogger writes human-readable logs to stderr and, when configured, JSON
// logs to a rotating file.
func newLogger(cfg *config.Config, debug bool, stderr io.Writer) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if debug {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(stderr), level),
	}

	if cfg.LogFile != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.LogMaxSizeMB, // megabytes
				MaxBackups: cfg.LogMaxBackups,
			}),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
