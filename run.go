package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/synapse/game"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and animate the orbs",
		RunE: func(cmd *cobra.Command, args []string) error {
			maxTicks, _ := cmd.Flags().GetInt32("max-ticks")
			speed, _ := cmd.Flags().GetInt("speed")

			s, err := startSimulation(cmd, false)
			if err != nil {
				return err
			}
			defer s.close()
			if speed > 0 {
				s.sim.SetStepsPerFrame(speed)
			}

			rl.SetConfigFlags(rl.FlagMsaa4xHint)
			rl.InitWindow(int32(s.cfg.Screen.Width), int32(s.cfg.Screen.Height), game.Title)
			defer rl.CloseWindow()
			rl.SetTargetFPS(int32(s.cfg.Screen.TargetFPS))

			g := game.New(s.sim, s.cfg, s.perf, s.seed)
			for !rl.WindowShouldClose() {
				if maxTicks > 0 && g.Tick() >= maxTicks {
					break
				}
				g.Update()
				g.Draw()
			}

			slog.Info("window closed",
				"run_id", s.runID,
				"tick", g.Tick(),
				"retired", s.sim.Retired(),
				"perf", s.perf.Stats(),
			)
			return nil
		},
	}

	cmd.Flags().Int32("max-ticks", 0, "Stop after this many ticks (0 = until the window closes)")
	cmd.Flags().Int("speed", 0, "Initial steps per frame (0 = config value)")

	return cmd
}
