// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned by Validate for out-of-range parameters.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Graph      GraphConfig      `yaml:"graph"`
	Orbs       OrbsConfig       `yaml:"orbs"`
	Cloud      CloudConfig      `yaml:"cloud"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GraphConfig holds neuron graph construction parameters.
type GraphConfig struct {
	MinNeuronDistance float64 `yaml:"min_neuron_distance"` // Closer neurons are pruned as redundant
	MaxNeuronDistance float64 `yaml:"max_neuron_distance"` // Edges only form below this, also the scan window width
	MaxDegree         int     `yaml:"max_degree"`          // Adjacency cap per neuron
}

// OrbsConfig holds orb lifecycle parameters.
type OrbsConfig struct {
	MaxTrail           int        `yaml:"max_trail"`           // Trail ring buffer capacity
	VelocityRange      [2]float64 `yaml:"velocity_range"`      // Per-orb speed, drawn once
	VelocityResolution float64    `yaml:"velocity_resolution"` // Speed is drawn as an integer multiple of this
	MaxWalkDistance    int        `yaml:"max_walk_distance"`   // Legs walked before retirement
	SpawnRate          int        `yaml:"spawn_rate"`          // Initial population sampling rate per neuron
	Size               float64    `yaml:"size"`                // Presentation size
}

// CloudConfig holds point cloud source parameters.
type CloudConfig struct {
	Source  string      `yaml:"source"` // "shell" or "csv"
	Path    string      `yaml:"path"`   // CSV path when source is csv
	Stride  int         `yaml:"stride"` // Keep every Nth sample
	Scale   float64     `yaml:"scale"`
	OffsetX float64     `yaml:"offset_x"`
	OffsetY float64     `yaml:"offset_y"`
	OffsetZ float64     `yaml:"offset_z"`
	Shell   ShellConfig `yaml:"shell"`
}

// ShellConfig holds procedural shell generation parameters.
type ShellConfig struct {
	Count      int     `yaml:"count"`
	RadiusX    float64 `yaml:"radius_x"`
	RadiusY    float64 `yaml:"radius_y"`
	RadiusZ    float64 `yaml:"radius_z"`
	NoiseScale float64 `yaml:"noise_scale"` // Frequency of surface displacement
	Amplitude  float64 `yaml:"amplitude"`   // Fraction of radius displaced by noise
	Fold       float64 `yaml:"fold"`        // Depth of the midline fold (0 = none)
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	AngleStep float64    `yaml:"angle_step"` // Radians per unpaused frame
	Distance  float64    `yaml:"distance"`
	Height    float64    `yaml:"height"`
	Fovy      float64    `yaml:"fovy"`
	OrbFade   [2]float64 `yaml:"orb_fade"`    // Depth range mapped to orb alpha
	NodeFade  [2]float64 `yaml:"neuron_fade"` // Depth range mapped to neuron alpha
}

// SimulationConfig holds frame loop parameters.
type SimulationConfig struct {
	TimeStep      float64 `yaml:"time_step"`       // Frame clock advance per unpaused frame
	StepsPerFrame int     `yaml:"steps_per_frame"` // Simulation steps per Update call
	Workers       int     `yaml:"workers"`         // 0 = GOMAXPROCS, 1 = single-threaded
	ChunkSize     int     `yaml:"chunk_size"`      // Orbs per RNG chunk
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	VelocityMinSteps int     // Lower bound of the integer velocity draw
	VelocityMaxSteps int     // Upper bound of the integer velocity draw
	VelocityDivisor  float32 // Integer draw is divided by this
	OrbSize32        float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	g := c.Graph
	if bad(g.MinNeuronDistance) || bad(g.MaxNeuronDistance) {
		return fmt.Errorf("%w: neuron distances must be finite and non-negative", ErrInvalidConfig)
	}
	if g.MaxNeuronDistance <= g.MinNeuronDistance {
		return fmt.Errorf("%w: max_neuron_distance %.2f must exceed min_neuron_distance %.2f",
			ErrInvalidConfig, g.MaxNeuronDistance, g.MinNeuronDistance)
	}
	if g.MaxDegree < 1 {
		return fmt.Errorf("%w: max_degree must be at least 1", ErrInvalidConfig)
	}

	o := c.Orbs
	if o.MaxTrail < 1 {
		return fmt.Errorf("%w: max_trail must be at least 1", ErrInvalidConfig)
	}
	if bad(o.VelocityResolution) || o.VelocityResolution == 0 {
		return fmt.Errorf("%w: velocity_resolution must be positive", ErrInvalidConfig)
	}
	if bad(o.VelocityRange[0]) || bad(o.VelocityRange[1]) || o.VelocityRange[0] > o.VelocityRange[1] {
		return fmt.Errorf("%w: velocity_range %v must be an ascending non-negative pair", ErrInvalidConfig, o.VelocityRange)
	}
	if o.VelocityRange[1] == 0 {
		return fmt.Errorf("%w: velocity_range upper bound must be positive", ErrInvalidConfig)
	}
	if o.MaxWalkDistance < 0 {
		return fmt.Errorf("%w: max_walk_distance must be non-negative", ErrInvalidConfig)
	}
	if o.SpawnRate < 1 {
		return fmt.Errorf("%w: spawn_rate must be at least 1", ErrInvalidConfig)
	}

	if c.Cloud.Stride < 1 {
		return fmt.Errorf("%w: cloud stride must be at least 1", ErrInvalidConfig)
	}
	if c.Simulation.StepsPerFrame < 1 || c.Simulation.ChunkSize < 1 || c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: simulation steps_per_frame and chunk_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// 0.1 resolution over [0.4, 1.0] draws an integer in [4, 10] and divides by 10.
	c.Derived.VelocityDivisor = float32(math.Round(1 / c.Orbs.VelocityResolution))
	c.Derived.VelocityMinSteps = int(math.Round(c.Orbs.VelocityRange[0] / c.Orbs.VelocityResolution))
	c.Derived.VelocityMaxSteps = int(math.Round(c.Orbs.VelocityRange[1] / c.Orbs.VelocityResolution))
	c.Derived.OrbSize32 = float32(c.Orbs.Size)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}
