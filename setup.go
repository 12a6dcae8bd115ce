package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/synapse/cloud"
	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/sim"
	"github.com/pthm-cable/synapse/telemetry"
)

// session is everything a command needs to drive one simulation run.
type session struct {
	cfg    *config.Config
	seed   int64
	runID  string
	points []graph.Point
	graph  *graph.Graph
	stats  graph.Stats
	out    *telemetry.OutputManager
	perf   *telemetry.PerfCollector
	sim    *sim.Simulation
}

// loadGraph reads the config, prepares the point cloud and builds the graph.
func loadGraph(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	seed, _ := cmd.Flags().GetInt64("seed")

	if err := config.Init(configPath); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	s := &session{
		cfg:   config.Cfg(),
		seed:  resolveSeed(seed),
		runID: newRunID(),
	}

	points, err := cloud.FromConfig(s.cfg.Cloud, s.seed)
	if err != nil {
		return nil, fmt.Errorf("preparing point cloud: %w", err)
	}
	s.points = points

	g, err := graph.Build(points, graph.ParamsFromConfig(s.cfg.Graph))
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	s.graph = g
	s.stats = graph.ComputeStats(g)

	slog.Info("graph built",
		"run_id", s.runID,
		"seed", s.seed,
		"source", s.cfg.Cloud.Source,
		"stats", s.stats,
	)
	return s, nil
}

// startSimulation loads the graph, opens output sinks and spawns the population.
func startSimulation(cmd *cobra.Command, logStats bool) (*session, error) {
	s, err := loadGraph(cmd)
	if err != nil {
		return nil, err
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	s.out, err = telemetry.NewOutputManager(outputDir, s.runID)
	if err != nil {
		return nil, err
	}
	if err := s.out.WriteConfig(s.cfg); err != nil {
		s.out.Close()
		return nil, err
	}
	if err := s.out.WriteGraph(s.stats); err != nil {
		s.out.Close()
		return nil, err
	}

	s.perf = telemetry.NewPerfCollector(s.cfg.Telemetry.PerfCollectorWindow)

	opts := sim.OptionsFromConfig(s.cfg, s.seed)
	opts.Collector = telemetry.NewCollector(s.runID, s.cfg.Telemetry.StatsWindow, float32(s.cfg.Simulation.TimeStep))
	opts.Perf = s.perf
	opts.Output = s.out
	opts.LogStats = logStats

	s.sim, err = sim.New(s.graph, opts)
	if err != nil {
		s.out.Close()
		return nil, fmt.Errorf("starting simulation: %w", err)
	}

	slog.Info("simulation started",
		"run_id", s.runID,
		"orbs", s.sim.OrbCount(),
		"workers", s.cfg.Simulation.Workers,
		"output_dir", s.out.Dir(),
	)
	return s, nil
}

// close stops the simulation and flushes output files.
func (s *session) close() error {
	if s.sim != nil {
		s.sim.Close()
	}
	return s.out.Close()
}
