package sim

import (
	"log/slog"

	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/telemetry"
)

// flushTelemetry closes the stats window when it is due.
func (s *Simulation) flushTelemetry() {
	c := s.opts.Collector
	if c == nil || !c.ShouldFlush(s.frame.Tick) {
		return
	}

	stats := c.Flush(s.frame.Tick, s.Population())

	var perfStats telemetry.PerfStats
	if s.opts.Perf != nil {
		perfStats = s.opts.Perf.Stats()
	}

	if s.opts.LogStats {
		stats.LogStats()
		if s.opts.Perf != nil {
			slog.Info("perf", "stats", perfStats)
		}
	}

	if s.opts.Output != nil {
		if err := s.opts.Output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if s.opts.Perf != nil {
			if err := s.opts.Output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}
}

// Population samples the live set for window statistics.
func (s *Simulation) Population() telemetry.Population {
	pop := telemetry.Population{
		Distances:  make([]float64, 0, s.orbCount),
		Velocities: make([]float64, 0, s.orbCount),
	}

	query := s.orbFilter.Query()
	for query.Next() {
		_, walker, _, _, _ := query.Get()

		pop.Live++
		if walker.State() == components.OrbIdle {
			pop.Idle++
		}
		pop.Distances = append(pop.Distances, float64(walker.DistanceTraveled))
		pop.Velocities = append(pop.Velocities, float64(walker.Velocity))
	}
	return pop
}
