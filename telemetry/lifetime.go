package telemetry

// LifetimeStats tracks one orb from spawn to retirement.
type LifetimeStats struct {
	BirthTick int32
	Seed      int32 // neuron the orb spawned on
	Velocity  float32
	Arrivals  int
}

// LifetimeTracker manages per-orb lifetime statistics keyed by orb id.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking a freshly spawned orb.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, seed int32, velocity float32) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		Seed:      seed,
		Velocity:  velocity,
	}
}

// Get returns the lifetime stats for an orb, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// RecordArrival increments the arrival count.
func (lt *LifetimeTracker) RecordArrival(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Arrivals++
	}
}

// Remove stops tracking an orb and returns its stats.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// Count returns the number of tracked orbs.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
