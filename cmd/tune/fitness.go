package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/synapse/cloud"
	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

// Targets are the graph properties the search aims for.
type Targets struct {
	MeanDegree float64
	Retention  float64 // neurons kept / input points
}

// Fitness weights.
const (
	weightDegree    = 1.0
	weightRetention = 4.0

	// invalidPenalty is returned when max does not exceed min.
	invalidPenalty = 1e6
)

// evalResult summarizes one seed's graph.
type evalResult struct {
	meanDegree float64
	retention  float64
}

// FitnessEvaluator builds graphs for a parameter vector and scores them.
type FitnessEvaluator struct {
	params  *ParamVector
	targets Targets
	clouds  [][]graph.Point
	base    *config.Config

	mu       sync.Mutex
	best     float64
	bestX    []float64
	lastEval evalResult
}

// NewFitnessEvaluator prepares one point cloud per seed up front.
func NewFitnessEvaluator(params *ParamVector, targets Targets, seeds []int64, base *config.Config) (*FitnessEvaluator, error) {
	fe := &FitnessEvaluator{
		params:  params,
		targets: targets,
		base:    base,
		best:    math.Inf(1),
	}
	for _, seed := range seeds {
		pts, err := cloud.FromConfig(base.Cloud, seed)
		if err != nil {
			return nil, err
		}
		fe.clouds = append(fe.clouds, pts)
	}
	return fe, nil
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, x)
	p := graph.ParamsFromConfig(cfg.Graph)
	if p.Validate() != nil {
		return invalidPenalty
	}

	results := make([]evalResult, len(fe.clouds))
	var wg sync.WaitGroup
	for i, pts := range fe.clouds {
		wg.Add(1)
		go func(idx int, pts []graph.Point) {
			defer wg.Done()
			results[idx] = measure(pts, p)
		}(i, pts)
	}
	wg.Wait()

	var avg evalResult
	for _, r := range results {
		avg.meanDegree += r.meanDegree
		avg.retention += r.retention
	}
	n := float64(len(results))
	avg.meanDegree /= n
	avg.retention /= n

	fitness := fe.score(avg)

	fe.mu.Lock()
	fe.lastEval = avg
	if fitness < fe.best {
		fe.best = fitness
		fe.bestX = fe.params.Clamp(x)
	}
	fe.mu.Unlock()

	return fitness
}

// measure builds one graph and reports its mean degree and retention.
func measure(pts []graph.Point, p graph.Params) evalResult {
	g, err := graph.Build(pts, p)
	if err != nil || len(pts) == 0 {
		return evalResult{}
	}
	s := graph.ComputeStats(g)
	return evalResult{
		meanDegree: s.MeanDegree,
		retention:  float64(s.Neurons) / float64(len(pts)),
	}
}

// score is the weighted squared error against the targets.
func (fe *FitnessEvaluator) score(r evalResult) float64 {
	dd := (r.meanDegree - fe.targets.MeanDegree) / fe.targets.MeanDegree
	dr := r.retention - fe.targets.Retention
	return weightDegree*dd*dd + weightRetention*dr*dr
}

// Best returns the best clamped vector seen and its fitness.
func (fe *FitnessEvaluator) Best() ([]float64, float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestX, fe.best
}

// Last returns the measurements from the most recent evaluation.
func (fe *FitnessEvaluator) Last() (meanDegree, retention float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastEval.meanDegree, fe.lastEval.retention
}
