package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/synapse/cloud"
	"github.com/pthm-cable/synapse/telemetry"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the neuron graph and report its statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cloudOut, _ := cmd.Flags().GetString("cloud-out")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			s, err := loadGraph(cmd)
			if err != nil {
				return err
			}

			if cloudOut != "" {
				f, err := os.Create(cloudOut)
				if err != nil {
					return fmt.Errorf("creating cloud file: %w", err)
				}
				if err := cloud.WriteCSV(f, s.points); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing cloud file: %w", err)
				}
				slog.Info("cloud written", "path", cloudOut, "points", humanize.Comma(int64(len(s.points))))
			}

			out, err := telemetry.NewOutputManager(outputDir, s.runID)
			if err != nil {
				return err
			}
			if err := out.WriteGraph(s.stats); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}

	cmd.Flags().String("cloud-out", "", "Write the prepared point cloud to this CSV file")

	return cmd
}
