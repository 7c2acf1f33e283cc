// Package config provides YAML-driven, environment-overridable configuration
// for the reasoner, following the same load/default/override shape used
// throughout the rest of this module's ambient stack.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"owlreasoner/internal/logging"
)

// ReasonerConfig holds every tunable that affects reasoning behavior,
// resource bounds, and ambient logging.
type ReasonerConfig struct {
	MaxDepth          int            `yaml:"max_depth"`
	Timeout           time.Duration  `yaml:"timeout"`
	StrictValidation  bool           `yaml:"strict_validation"`
	EnableParallel    bool           `yaml:"enable_parallel"`
	ParallelWorkers   int            `yaml:"parallel_workers"`
	IRICacheSize      int            `yaml:"iri_cache_size"`
	ResultCacheSize   int            `yaml:"result_cache_size"`
	MemoryMaxBytes    uint64         `yaml:"memory_max_bytes"`
	MemoryCheckPeriod time.Duration  `yaml:"memory_check_period"`
	MemoryPressure    float64        `yaml:"memory_pressure_threshold"`
	Logging           logging.Config `yaml:"logging"`
}

// DefaultReasonerConfig returns the configuration spec.md documents as the
// out-of-the-box behavior: bounded expansion depth, a 30s timeout, and a
// conservative memory-pressure threshold.
func DefaultReasonerConfig() *ReasonerConfig {
	return &ReasonerConfig{
		MaxDepth:          1000,
		Timeout:           30 * time.Second,
		StrictValidation:  false,
		EnableParallel:    false,
		ParallelWorkers:   4,
		IRICacheSize:      10000,
		ResultCacheSize:   10000,
		MemoryMaxBytes:    1 << 30, // 1 GiB
		MemoryCheckPeriod: 5 * time.Minute,
		MemoryPressure:    0.8,
		Logging: logging.Config{
			Level:     "info",
			Format:    "json",
			DebugMode: false,
		},
	}
}

// Load reads a YAML configuration file at path, starting from
// DefaultReasonerConfig and overlaying whatever fields the file sets. A
// missing file is not an error: it falls back to defaults, same as the
// teacher's Config.Load.
func Load(path string) (*ReasonerConfig, error) {
	cfg := DefaultReasonerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *ReasonerConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets OWLREASON_* environment variables override file or
// default values, mirroring the teacher's env-override pattern for
// container/CI deployments where editing a YAML file isn't convenient.
func (c *ReasonerConfig) applyEnvOverrides() {
	if v := os.Getenv("OWLREASON_MAX_DEPTH"); v != "" {
		if n, err := parseInt(v); err == nil {
			c.MaxDepth = n
		}
	}
	if v := os.Getenv("OWLREASON_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("OWLREASON_STRICT_VALIDATION"); v != "" {
		c.StrictValidation = v == "1" || v == "true"
	}
	if v := os.Getenv("OWLREASON_ENABLE_PARALLEL"); v != "" {
		c.EnableParallel = v == "1" || v == "true"
	}
	if v := os.Getenv("OWLREASON_PARALLEL_WORKERS"); v != "" {
		if n, err := parseInt(v); err == nil {
			c.ParallelWorkers = n
		}
	}
	if v := os.Getenv("OWLREASON_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("OWLREASON_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || v == "true"
	}
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// Validate checks that configured bounds are usable. It rejects values that
// would make the reasoner either non-terminating (zero depth/timeout with
// cycles present) or unable to allocate at all.
func (c *ReasonerConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be >= 1")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}
	if c.IRICacheSize < 1 {
		return fmt.Errorf("iri_cache_size must be >= 1")
	}
	if c.ResultCacheSize < 1 {
		return fmt.Errorf("result_cache_size must be >= 1")
	}
	if c.ParallelWorkers < 1 {
		return fmt.Errorf("parallel_workers must be >= 1")
	}
	if c.MemoryPressure <= 0 || c.MemoryPressure > 1 {
		return fmt.Errorf("memory_pressure_threshold must be in (0, 1]")
	}
	return nil
}
