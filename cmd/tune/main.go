// Command tune searches graph distance parameters for a target mean degree
// and neuron retention using Nelder-Mead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/synapse/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	MinDistance float64 `csv:"min_distance"`
	MaxDistance float64 `csv:"max_distance"`
	MeanDegree  float64 `csv:"mean_degree"`
	Retention   float64 `csv:"retention"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of point clouds per evaluation")
	maxEvals := flag.Int("max-evals", 120, "Maximum number of evaluations")
	targetDegree := flag.Float64("target-degree", 3.0, "Target mean neuron degree")
	targetRetention := flag.Float64("target-retention", 0.6, "Target fraction of points kept as neurons")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *outputDir, *seeds, *maxEvals, Targets{
		MeanDegree: *targetDegree,
		Retention:  *targetRetention,
	}); err != nil {
		slog.Error("tune failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, seeds, maxEvals int, targets Targets) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if targets.MeanDegree <= 0 {
		return fmt.Errorf("--target-degree must be positive")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := config.Init(configPath); err != nil {
		return err
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg.Graph)
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator, err := NewFitnessEvaluator(params, targets, evalSeeds, baseCfg)
	if err != nil {
		return err
	}

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	var rows []evalRow
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)

			clamped := params.Clamp(raw)
			degree, retention := evaluator.Last()
			rows = append(rows, evalRow{
				Eval:        len(rows) + 1,
				Fitness:     fitness,
				MinDistance: clamped[0],
				MaxDistance: clamped[1],
				MeanDegree:  degree,
				Retention:   retention,
			})
			slog.Info("eval",
				"n", len(rows),
				"of", maxEvals,
				"fitness", fitness,
				"min_distance", clamped[0],
				"max_distance", clamped[1],
				"mean_degree", degree,
				"retention", retention,
			)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{SimplexSize: 0.2}

	slog.Info("starting Nelder-Mead",
		"params", params.Dim(),
		"seeds", seeds,
		"max_evals", maxEvals,
		"target_degree", targets.MeanDegree,
		"target_retention", targets.Retention,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	if err := gocsv.MarshalFile(&rows, logFile); err != nil {
		return fmt.Errorf("writing tune log: %w", err)
	}

	best, bestFitness := evaluator.Best()
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		return fmt.Errorf("no evaluations completed")
	}

	slog.Info("tune complete",
		"evals", len(rows),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"fitness", bestFitness,
		"min_distance", best[0],
		"max_distance", best[1],
	)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(bestCfg, best)
	return bestCfg.WriteYAML(filepath.Join(outputDir, "best_config.yaml"))
}
