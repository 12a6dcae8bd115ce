package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector("run", 10, 0.1)

	assert.False(t, c.ShouldFlush(9))
	assert.True(t, c.ShouldFlush(10))

	for i := 0; i < 4; i++ {
		c.RecordSpawn()
	}
	c.RecordRetire(20)
	c.RecordRetire(40)
	c.RecordArrivals(8)

	s := c.Flush(10, Population{
		Live:       4,
		Idle:       1,
		Distances:  []float64{1, 2, 3, 4},
		Velocities: []float64{0.4, 0.6, 0.8, 1.0},
	})

	assert.Equal(t, "run", s.RunID)
	assert.Equal(t, int32(0), s.WindowStartTick)
	assert.Equal(t, int32(10), s.WindowEndTick)
	assert.InDelta(t, 1.0, s.SimTimeSec, 1e-6)
	assert.Equal(t, 4, s.Live)
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 4, s.Spawned)
	assert.Equal(t, 2, s.Retired)
	assert.Equal(t, 8, s.Arrivals)
	assert.InDelta(t, 0.2, s.ArrivalRate, 1e-9)
	assert.InDelta(t, 2.5, s.DistanceMean, 1e-9)
	assert.InDelta(t, 0.7, s.VelocityMean, 1e-9)
	assert.InDelta(t, 30.0, s.LifetimeMean, 1e-9)

	// Counters reset, window advances
	require.False(t, c.ShouldFlush(19))
	s = c.Flush(20, Population{})
	assert.Equal(t, int32(10), s.WindowStartTick)
	assert.Zero(t, s.Spawned)
	assert.Zero(t, s.Retired)
	assert.Zero(t, s.Arrivals)
	assert.Zero(t, s.ArrivalRate)
	assert.Zero(t, s.LifetimeMean)
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector("", 0, 0.1)
	assert.Equal(t, int32(1), c.WindowDurationTicks())
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 100, 3, 0.5)
	lt.RecordArrival(7)
	lt.RecordArrival(7)
	lt.RecordArrival(99) // unknown ids are ignored

	require.NotNil(t, lt.Get(7))
	assert.Equal(t, 1, lt.Count())

	s := lt.Remove(7)
	require.NotNil(t, s)
	assert.Equal(t, int32(100), s.BirthTick)
	assert.Equal(t, int32(3), s.Seed)
	assert.Equal(t, 2, s.Arrivals)
	assert.Zero(t, lt.Count())
	assert.Nil(t, lt.Remove(7))
}
