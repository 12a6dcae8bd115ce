package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Graph.MinNeuronDistance)
	assert.Equal(t, 25.0, cfg.Graph.MaxNeuronDistance)
	assert.Equal(t, 4, cfg.Graph.MaxDegree)
	assert.Equal(t, 25, cfg.Orbs.MaxTrail)
	assert.Equal(t, 30, cfg.Orbs.MaxWalkDistance)
	assert.Equal(t, 2, cfg.Orbs.SpawnRate)

	// [0.4, 1.0] at 0.1 resolution draws from [4, 10] and divides by 10
	assert.Equal(t, 4, cfg.Derived.VelocityMinSteps)
	assert.Equal(t, 10, cfg.Derived.VelocityMaxSteps)
	assert.Equal(t, float32(10), cfg.Derived.VelocityDivisor)
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graph:\n  max_neuron_distance: 40\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.Graph.MaxNeuronDistance)
	// Untouched fields keep their defaults
	assert.Equal(t, 5.0, cfg.Graph.MinNeuronDistance)
	assert.Equal(t, 4, cfg.Graph.MaxDegree)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative min", func(c *Config) { c.Graph.MinNeuronDistance = -1 }},
		{"nan max", func(c *Config) { c.Graph.MaxNeuronDistance = math.NaN() }},
		{"max below min", func(c *Config) { c.Graph.MaxNeuronDistance = 2 }},
		{"zero degree", func(c *Config) { c.Graph.MaxDegree = 0 }},
		{"zero trail", func(c *Config) { c.Orbs.MaxTrail = 0 }},
		{"inverted velocity", func(c *Config) { c.Orbs.VelocityRange = [2]float64{1.0, 0.4} }},
		{"zero resolution", func(c *Config) { c.Orbs.VelocityResolution = 0 }},
		{"zero spawn rate", func(c *Config) { c.Orbs.SpawnRate = 0 }},
		{"zero stride", func(c *Config) { c.Cloud.Stride = 0 }},
		{"zero chunk", func(c *Config) { c.Simulation.ChunkSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Orbs.MaxWalkDistance = 12

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Orbs.MaxWalkDistance)
}
