// Package logging builds the zap loggers used across adaptiquiz.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/adaptiquiz/internal/fileutil"
)

// Config selects level, encoding and sink.
type Config struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
	// File is the log path. Empty means stderr.
	File string `mapstructure:"file"`
}

// New builds a sugared logger from cfg. The returned func flushes buffered
// entries and should be deferred by the caller.
func New(cfg Config) (*zap.SugaredLogger, func(), error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true

	sink := "stderr"
	if cfg.File != "" {
		if err := fileutil.EnsureDir(cfg.File); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		sink = cfg.File
	}
	zc.OutputPaths = []string{sink}
	zc.ErrorOutputPaths = []string{sink}

	zl, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	sugar := zl.Sugar()
	return sugar, func() { _ = sugar.Sync() }, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Redact masks secrets such as API keys for logging: all but the last four
// characters are replaced.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "[REDACTED]"
	}
	return "…" + secret[len(secret)-4:]
}
