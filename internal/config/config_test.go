package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReasonerConfig(t *testing.T) {
	cfg := DefaultReasonerConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.MaxDepth)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.EnableParallel)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultReasonerConfig().MaxDepth, cfg.MaxDepth)
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reasoner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 50\nstrict_validation: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxDepth)
	assert.True(t, cfg.StrictValidation)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultReasonerConfig().IRICacheSize, cfg.IRICacheSize)
}

func TestValidateRejectsBadBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ReasonerConfig)
		wantErr string
	}{
		{"zero depth", func(c *ReasonerConfig) { c.MaxDepth = 0 }, "max_depth"},
		{"negative timeout", func(c *ReasonerConfig) { c.Timeout = -1 }, "timeout"},
		{"zero iri cache", func(c *ReasonerConfig) { c.IRICacheSize = 0 }, "iri_cache_size"},
		{"zero workers", func(c *ReasonerConfig) { c.ParallelWorkers = 0 }, "parallel_workers"},
		{"pressure too high", func(c *ReasonerConfig) { c.MemoryPressure = 1.5 }, "memory_pressure_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultReasonerConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
