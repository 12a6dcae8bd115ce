package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerfCollectorBasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseRetireMark)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseStep)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	assert.Positive(t, stats.AvgTickDuration)
	assert.Positive(t, stats.PhaseAvg[PhaseRetireMark])
	assert.Positive(t, stats.PhaseAvg[PhaseStep])
	assert.Zero(t, stats.PhaseAvg[PhaseSweep])
	assert.LessOrEqual(t, stats.MinTickDuration, stats.MaxTickDuration)
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSweep)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	assert.Positive(t, stats.AvgTickDuration)
	assert.Positive(t, stats.TicksPerSecond)
}

func TestPerfCollectorPhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSweep)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseStep)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	assert.Greater(t, stats.PhasePct[PhaseStep], stats.PhasePct[PhaseSweep])
	assert.LessOrEqual(t, stats.PhasePct[PhaseStep], 100.0)
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	assert.Zero(t, stats.AvgTickDuration)
	assert.Zero(t, stats.TicksPerSecond)
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	assert.GreaterOrEqual(t, stats.FrameDuration, 15*time.Millisecond)
	assert.Positive(t, stats.FPS)
	assert.Less(t, stats.FPS, 70.0)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "retire_mark", PhaseRetireMark.String())
	assert.Equal(t, "telemetry", PhaseTelemetry.String())
	assert.Equal(t, "unknown", Phase(200).String())
}
