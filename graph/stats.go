package graph

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a built graph.
type Stats struct {
	Neurons     int
	Edges       int
	Input       int
	Pruned      int
	Lonely      int
	Iterations  int
	MeanDegree  float64
	StdDegree   float64
	DegreeHist  []int // DegreeHist[d] = neurons with degree d
	MeanEdgeLen float64
	MinEdgeLen  float64
	MaxEdgeLen  float64
}

// ComputeStats walks g and summarizes degree and edge length distributions.
func ComputeStats(g *Graph) Stats {
	info := g.Info()
	s := Stats{
		Neurons:    g.Len(),
		Input:      info.Input,
		Pruned:     info.Pruned,
		Lonely:     info.Lonely,
		Iterations: info.Iterations,
		DegreeHist: make([]int, g.MaxDegree()+1),
	}
	if g.Len() == 0 {
		return s
	}

	degrees := make([]float64, 0, g.Len())
	g.Each(func(_ NeuronID, n *Neuron) {
		degrees = append(degrees, float64(n.Degree()))
		s.DegreeHist[n.Degree()]++
	})
	s.MeanDegree, s.StdDegree = stat.PopMeanStdDev(degrees, nil)

	var lengths []float64
	g.EachEdge(func(a, b NeuronID) {
		lengths = append(lengths, g.Position(a).Distance(g.Position(b)))
	})
	s.Edges = len(lengths)
	if len(lengths) > 0 {
		s.MeanEdgeLen = stat.Mean(lengths, nil)
		s.MinEdgeLen, s.MaxEdgeLen = math.Inf(1), math.Inf(-1)
		for _, l := range lengths {
			s.MinEdgeLen = math.Min(s.MinEdgeLen, l)
			s.MaxEdgeLen = math.Max(s.MaxEdgeLen, l)
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("neurons", s.Neurons),
		slog.Int("edges", s.Edges),
		slog.Int("input", s.Input),
		slog.Int("pruned", s.Pruned),
		slog.Int("lonely", s.Lonely),
		slog.Int("iterations", s.Iterations),
		slog.Float64("mean_degree", s.MeanDegree),
		slog.Float64("std_degree", s.StdDegree),
		slog.Any("degree_hist", s.DegreeHist),
		slog.Float64("mean_edge_len", s.MeanEdgeLen),
		slog.Float64("min_edge_len", s.MinEdgeLen),
		slog.Float64("max_edge_len", s.MaxEdgeLen),
	)
}
