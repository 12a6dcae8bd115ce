package main

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHeadlessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the simulation without graphics",
		Long: `Run the simulation without a window, logging window stats and writing
CSV telemetry when --output-dir is set.

Examples:
  synapse headless --max-ticks 20000 --output-dir runs/a
  synapse headless --seed 42 --log-stats=false --progress 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxTicks, _ := cmd.Flags().GetInt32("max-ticks")
			logStats, _ := cmd.Flags().GetBool("log-stats")
			progress, _ := cmd.Flags().GetInt32("progress")

			s, err := startSimulation(cmd, logStats)
			if err != nil {
				return err
			}

			start := time.Now()
			for s.sim.Frame().Tick < maxTicks {
				s.sim.Step()
				tick := s.sim.Frame().Tick
				if progress > 0 && tick%progress == 0 {
					slog.Info("progress",
						"tick", humanize.Comma(int64(tick)),
						"of", humanize.Comma(int64(maxTicks)),
						"orbs", humanize.Comma(int64(s.sim.OrbCount())),
						"retired", humanize.Comma(int64(s.sim.Retired())),
					)
				}
			}

			elapsed := time.Since(start)
			slog.Info("headless run complete",
				"run_id", s.runID,
				"ticks", maxTicks,
				"elapsed", elapsed.Round(time.Millisecond).String(),
				"retired", s.sim.Retired(),
				"perf", s.perf.Stats(),
			)
			return s.close()
		},
	}

	cmd.Flags().Int32("max-ticks", 6000, "Ticks to simulate")
	cmd.Flags().Bool("log-stats", true, "Log window stats as they are flushed")
	cmd.Flags().Int32("progress", 0, "Log progress every N ticks (0 = never)")

	return cmd
}
