// Package sim runs the orb population over a built neuron graph.
package sim

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/rng"
	"github.com/pthm-cable/synapse/systems"
	"github.com/pthm-cable/synapse/telemetry"
)

var (
	// ErrEmptyGraph is returned when an orb is requested on a graph with no neurons.
	ErrEmptyGraph = errors.New("sim: graph has no neurons")
	// ErrInvalidSeed is returned when a spawn names a neuron outside the graph.
	ErrInvalidSeed = errors.New("sim: seed neuron out of range")
)

// Frame is the per-frame clock handed to the renderer.
type Frame struct {
	Tick  int32   // simulation steps taken
	Angle float32 // camera orbit angle in radians
	Time  float32 // presentation clock
}

// Options configures a Simulation.
type Options struct {
	Seed          int64
	Source        rng.Source // overrides Seed when set
	Orbs          systems.OrbParams
	SpawnRate     int // initial population: about one orb per SpawnRate+1 neurons
	Workers       int // 0 = GOMAXPROCS
	ChunkSize     int
	StepsPerFrame int
	AngleStep     float32
	TimeStep      float32

	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
	Output    *telemetry.OutputManager
	LogStats  bool
}

// DefaultOptions returns the stock orb parameters with a single step per frame.
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		Orbs:          systems.DefaultOrbParams(),
		SpawnRate:     2,
		ChunkSize:     64,
		StepsPerFrame: 1,
		AngleStep:     0.006,
		TimeStep:      0.1,
	}
}

// OptionsFromConfig maps cfg onto Options. Telemetry sinks are left for the caller.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	return Options{
		Seed:          seed,
		Orbs:          systems.OrbParamsFromConfig(cfg),
		SpawnRate:     cfg.Orbs.SpawnRate,
		Workers:       cfg.Simulation.Workers,
		ChunkSize:     cfg.Simulation.ChunkSize,
		StepsPerFrame: cfg.Simulation.StepsPerFrame,
		AngleStep:     float32(cfg.Camera.AngleStep),
		TimeStep:      float32(cfg.Simulation.TimeStep),
	}
}

// Simulation owns the graph and the live set of orbs.
type Simulation struct {
	graph *graph.Graph
	opts  Options
	src   rng.Source

	world     *ecs.World
	orbMapper *ecs.Map5[
		components.Position,
		components.Walker,
		components.Trail,
		components.Body,
		components.Identity,
	]
	orbFilter *ecs.Filter5[
		components.Position,
		components.Walker,
		components.Trail,
		components.Body,
		components.Identity,
	]

	parallel  *parallelState
	lifetimes *telemetry.LifetimeTracker

	frame    Frame
	paused   bool
	nextID   uint32
	orbCount int
	retired  int
}

// New creates a simulation over g and spawns the initial population.
// An empty graph yields a simulation with no orbs.
func New(g *graph.Graph, opts Options) (*Simulation, error) {
	if g == nil {
		return nil, ErrEmptyGraph
	}
	if opts.SpawnRate < 1 || opts.ChunkSize < 1 || opts.StepsPerFrame < 1 {
		return nil, fmt.Errorf("sim: spawn rate, chunk size and steps per frame must be positive")
	}
	if opts.Orbs.VelocityDivisor <= 0 || opts.Orbs.MaxTrail < 0 {
		return nil, fmt.Errorf("sim: invalid orb params %+v", opts.Orbs)
	}

	src := opts.Source
	if src == nil {
		src = rng.New(opts.Seed)
	}

	world := ecs.NewWorld()
	s := &Simulation{
		graph: g,
		opts:  opts,
		src:   src,
		world: world,
		orbMapper: ecs.NewMap5[
			components.Position,
			components.Walker,
			components.Trail,
			components.Body,
			components.Identity,
		](world),
		orbFilter: ecs.NewFilter5[
			components.Position,
			components.Walker,
			components.Trail,
			components.Body,
			components.Identity,
		](world),
		lifetimes: telemetry.NewLifetimeTracker(),
	}
	s.parallel = newParallelState(s, opts.Workers)

	s.spawnInitialPopulation()
	return s, nil
}

// spawnInitialPopulation samples neurons in index order.
func (s *Simulation) spawnInitialPopulation() {
	rate := s.opts.SpawnRate
	for i := 0; i < s.graph.Len(); i++ {
		if s.src.IntRange(0, rate) == i%rate+1 {
			s.spawn(graph.NeuronID(i))
		}
	}
}

// Spawn adds an orb on seed.
func (s *Simulation) Spawn(seed graph.NeuronID) error {
	if s.graph.Len() == 0 {
		return ErrEmptyGraph
	}
	if !s.graph.Valid(seed) {
		return fmt.Errorf("%w: %d", ErrInvalidSeed, seed)
	}
	s.spawn(seed)
	return nil
}

// SpawnRandom adds an orb on a uniformly chosen neuron.
func (s *Simulation) SpawnRandom() error {
	if s.graph.Len() == 0 {
		return ErrEmptyGraph
	}
	s.spawn(s.randomNeuron())
	return nil
}

func (s *Simulation) randomNeuron() graph.NeuronID {
	return graph.NeuronID(s.src.IntRange(0, s.graph.Len()-1))
}

func (s *Simulation) spawn(seed graph.NeuronID) ecs.Entity {
	o := systems.SpawnOrb(s.graph, seed, s.src, s.opts.Orbs)
	id := components.Identity{ID: s.nextID, BirthTick: s.frame.Tick}
	s.nextID++

	entity := s.orbMapper.NewEntity(&o.Pos, &o.Walker, &o.Trail, &o.Body, &id)
	s.orbCount++

	s.lifetimes.Register(id.ID, id.BirthTick, int32(seed), o.Walker.Velocity)
	if s.opts.Collector != nil {
		s.opts.Collector.RecordSpawn()
	}
	return entity
}

// Update advances one frame: StepsPerFrame steps plus the frame clock.
// A paused simulation advances nothing.
func (s *Simulation) Update() {
	if s.paused {
		return
	}
	for i := 0; i < s.opts.StepsPerFrame; i++ {
		s.Step()
	}
	s.frame.Angle += s.opts.AngleStep
	s.frame.Time += s.opts.TimeStep
}

// Step runs one tick: retirement marking, orb iteration, then the sweep
// that replaces every retired orb. The live count is unchanged afterwards.
func (s *Simulation) Step() {
	perf := s.opts.Perf
	if perf != nil {
		perf.StartTick()
		perf.StartPhase(telemetry.PhaseRetireMark)
	}

	s.parallel.collect(s.opts.Orbs.MaxWalkDistance)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseStep)
	}
	s.parallel.step()
	s.applyArrivals()

	if perf != nil {
		perf.StartPhase(telemetry.PhaseSweep)
	}
	s.sweep()

	s.frame.Tick++

	if perf != nil {
		perf.StartPhase(telemetry.PhaseTelemetry)
	}
	s.flushTelemetry()

	if perf != nil {
		perf.EndTick()
	}
}

// applyArrivals records per-orb arrivals after the parallel phase.
func (s *Simulation) applyArrivals() {
	arrivals := 0
	for i, ref := range s.parallel.refs {
		if s.parallel.arrived[i] {
			arrivals++
			s.lifetimes.RecordArrival(ref.id)
		}
	}
	if s.opts.Collector != nil {
		s.opts.Collector.RecordArrivals(arrivals)
	}
}

// sweep removes retired orbs and spawns the same number on random neurons.
func (s *Simulation) sweep() {
	retired := s.parallel.retired
	if len(retired) == 0 {
		return
	}

	for _, r := range retired {
		s.lifetimes.Remove(r.id)
		if s.opts.Collector != nil {
			s.opts.Collector.RecordRetire(s.frame.Tick - r.birthTick)
		}
		s.world.RemoveEntity(r.entity)
		s.orbCount--
		s.retired++
	}

	for range retired {
		s.spawn(s.randomNeuron())
	}
	s.parallel.retired = retired[:0]
}

// SetPaused sets the pause gate.
func (s *Simulation) SetPaused(paused bool) { s.paused = paused }

// TogglePause flips the pause gate.
func (s *Simulation) TogglePause() { s.paused = !s.paused }

// Paused reports the pause gate.
func (s *Simulation) Paused() bool { return s.paused }

// SetStepsPerFrame changes the speed multiplier; values below 1 are clamped.
func (s *Simulation) SetStepsPerFrame(n int) { s.opts.StepsPerFrame = max(n, 1) }

// StepsPerFrame returns the speed multiplier.
func (s *Simulation) StepsPerFrame() int { return s.opts.StepsPerFrame }

// Frame returns the current frame clock.
func (s *Simulation) Frame() Frame { return s.frame }

// Graph returns the graph orbs walk on.
func (s *Simulation) Graph() *graph.Graph { return s.graph }

// OrbCount returns the number of live orbs.
func (s *Simulation) OrbCount() int { return s.orbCount }

// Retired returns the number of orbs retired since the simulation started.
func (s *Simulation) Retired() int { return s.retired }

// IdleCount returns the number of live orbs with no target.
func (s *Simulation) IdleCount() int {
	idle := 0
	query := s.orbFilter.Query()
	for query.Next() {
		_, walker, _, _, _ := query.Get()
		if walker.State() == components.OrbIdle {
			idle++
		}
	}
	return idle
}

// Close stops the worker pool. Output sinks belong to the caller.
func (s *Simulation) Close() {
	s.parallel.stopWorkers()
}
