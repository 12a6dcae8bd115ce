// Package telemetry tracks orb population health, step timing, and CSV output.
package telemetry

// Population is the live-set sample taken when a window is flushed.
type Population struct {
	Live       int
	Idle       int
	Distances  []float64 // legs walked per live orb
	Velocities []float64
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	runID               string
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	spawned   int
	retired   int
	arrivals  int
	lifetimes []float64
}

// NewCollector creates a collector that flushes every windowTicks ticks.
// dt is the simulated time per tick, used for the sim_time column.
func NewCollector(runID string, windowTicks int, dt float32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		runID:               runID,
		windowDurationTicks: int32(windowTicks),
		dt:                  dt,
	}
}

// RecordSpawn records an orb entering the live set.
func (c *Collector) RecordSpawn() {
	c.spawned++
}

// RecordRetire records an orb leaving the live set after lifetimeTicks ticks.
func (c *Collector) RecordRetire(lifetimeTicks int32) {
	c.retired++
	c.lifetimes = append(c.lifetimes, float64(lifetimeTicks))
}

// RecordArrivals adds n neuron arrivals.
func (c *Collector) RecordArrivals(n int) {
	c.arrivals += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	distMean, distStd, p10, p50, p90 := Distribution(pop.Distances)
	velMean, _, _, _, _ := Distribution(pop.Velocities)
	lifeMean, _, _, lifeP50, _ := Distribution(c.lifetimes)

	var rate float64
	if ticks := currentTick - c.windowStartTick; ticks > 0 && pop.Live > 0 {
		rate = float64(c.arrivals) / float64(ticks) / float64(pop.Live)
	}

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Live: pop.Live,
		Idle: pop.Idle,

		Spawned:     c.spawned,
		Retired:     c.retired,
		Arrivals:    c.arrivals,
		ArrivalRate: rate,

		DistanceMean: distMean,
		DistanceStd:  distStd,
		DistanceP10:  p10,
		DistanceP50:  p50,
		DistanceP90:  p90,

		VelocityMean: velMean,

		LifetimeMean: lifeMean,
		LifetimeP50:  lifeP50,
	}

	c.windowStartTick = currentTick
	c.spawned = 0
	c.retired = 0
	c.arrivals = 0
	c.lifetimes = c.lifetimes[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
