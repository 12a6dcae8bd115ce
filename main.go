package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synapse",
		Short: "Neuron graph over a point cloud, walked by orbs",
		Long: `Synapse builds a sparse connectivity graph over a 3D point cloud and
animates orbs that wander it one link at a time, leaving fading trails.

Examples:
  synapse run                          # open a window with default settings
  synapse headless --max-ticks 6000    # simulate without graphics
  synapse graph --cloud-out cloud.csv  # build the graph and print its stats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			return setupLogging(level)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for CSV telemetry and config snapshot")

	rootCmd.AddCommand(
		newRunCmd(),
		newHeadlessCmd(),
		newGraphCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs a JSON slog handler on stdout.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}

// resolveSeed returns seed, or a time-based seed when it is zero.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func newRunID() string {
	return uuid.NewString()
}
