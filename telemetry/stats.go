package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated orb statistics for a window of ticks.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Live int `csv:"live"`
	Idle int `csv:"idle"`

	// Events during window
	Spawned  int `csv:"spawned"`
	Retired  int `csv:"retired"`
	Arrivals int `csv:"arrivals"`

	// Arrivals per live orb per tick
	ArrivalRate float64 `csv:"arrival_rate"`

	// Legs walked by live orbs, sampled at window end
	DistanceMean float64 `csv:"distance_mean"`
	DistanceStd  float64 `csv:"distance_std"`
	DistanceP10  float64 `csv:"distance_p10"`
	DistanceP50  float64 `csv:"distance_p50"`
	DistanceP90  float64 `csv:"distance_p90"`

	VelocityMean float64 `csv:"velocity_mean"`

	// Ticks lived by orbs retired in this window
	LifetimeMean float64 `csv:"lifetime_mean"`
	LifetimeP50  float64 `csv:"lifetime_p50"`
}

// Distribution summarizes a sample with gonum's empirical quantiles.
// Returns zeros for an empty sample.
func Distribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live", s.Live),
		slog.Int("idle", s.Idle),
		slog.Int("spawned", s.Spawned),
		slog.Int("retired", s.Retired),
		slog.Int("arrivals", s.Arrivals),
		slog.Float64("arrival_rate", s.ArrivalRate),
		slog.Float64("distance_mean", s.DistanceMean),
		slog.Float64("distance_std", s.DistanceStd),
		slog.Float64("distance_p10", s.DistanceP10),
		slog.Float64("distance_p50", s.DistanceP50),
		slog.Float64("distance_p90", s.DistanceP90),
		slog.Float64("velocity_mean", s.VelocityMean),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Float64("lifetime_p50", s.LifetimeP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
