// Package logging provides categorized, config-driven structured logging for
// the reasoner built on top of go.uber.org/zap. Each subsystem gets its own
// named sub-logger so log lines carry a stable "category" field instead of
// being interleaved through one undifferentiated stream.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies the subsystem emitting a log line.
type Category string

const (
	CategoryIRI           Category = "iri"
	CategoryOntology      Category = "ontology"
	CategoryCache         Category = "cache"
	CategoryMemoryMonitor Category = "memory_monitor"
	CategoryRules         Category = "rules"
	CategoryTableaux      Category = "tableaux"
	CategoryReasoner      Category = "reasoner"
	CategoryClosure       Category = "closure"
)

// Config controls how the root logger is built.
type Config struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, console
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // master toggle
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // per-category toggles
}

// IsCategoryEnabled reports whether the given category should emit logs.
// When DebugMode is false, nothing is enabled regardless of Categories.
func (c *Config) IsCategoryEnabled(category Category) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a root *zap.Logger from cfg. Callers derive category loggers
// from it with Named; this function is called once at process startup.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel(cfg.Level))
	if !cfg.DebugMode {
		zc.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return logger, nil
}

// Named returns the sub-logger for category, or a no-op logger if the
// category is disabled by cfg.
func Named(root *zap.Logger, cfg Config, category Category) *zap.Logger {
	if !cfg.IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	return root.Named(string(category))
}
