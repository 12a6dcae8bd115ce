package graph

import (
	"fmt"
	"slices"
)

// BuildInfo records what construction did to the input cloud.
type BuildInfo struct {
	Input      int // Points supplied
	Pruned     int // Removed as too close to a neighbor
	Lonely     int // Removed for having no adjacency
	Iterations int // Scan windows visited
}

// Graph is an immutable arena of connected neurons.
type Graph struct {
	neurons   []Neuron
	maxDegree int
	info      BuildInfo
}

// Len returns the number of neurons.
func (g *Graph) Len() int {
	return len(g.neurons)
}

// Valid reports whether id refers to a neuron in g.
func (g *Graph) Valid(id NeuronID) bool {
	return id >= 0 && int(id) < len(g.neurons)
}

// Neuron returns the neuron with the given id. The neuron must not be modified.
func (g *Graph) Neuron(id NeuronID) *Neuron {
	return &g.neurons[id]
}

// Position returns the location of neuron id.
func (g *Graph) Position(id NeuronID) Point {
	return g.neurons[id].Point
}

// Adjacent returns the adjacency of neuron id. See Neuron.Adjacent.
func (g *Graph) Adjacent(id NeuronID) []NeuronID {
	return g.neurons[id].adjacent
}

// MaxDegree returns the adjacency cap the graph was built with.
func (g *Graph) MaxDegree() int {
	return g.maxDegree
}

// Info returns construction details.
func (g *Graph) Info() BuildInfo {
	return g.info
}

// Each calls fn for every neuron in order.
func (g *Graph) Each(fn func(id NeuronID, n *Neuron)) {
	for i := range g.neurons {
		fn(NeuronID(i), &g.neurons[i])
	}
}

// EachEdge calls fn once per linked pair. A link present on only one side
// (the other side was at its cap) is still visited once.
func (g *Graph) EachEdge(fn func(a, b NeuronID)) {
	for i := range g.neurons {
		a := NeuronID(i)
		for _, b := range g.neurons[i].adjacent {
			if b > a || !slices.Contains(g.neurons[b].adjacent, a) {
				fn(a, b)
			}
		}
	}
}

// Assemble builds a graph from explicit links, honoring the degree cap in
// the order links are given. Neurons without links are kept, which makes it
// suitable for fixtures and replays rather than cloud construction.
func Assemble(points []Point, links [][2]NeuronID, maxDegree int) (*Graph, error) {
	if maxDegree < 1 {
		return nil, fmt.Errorf("%w: max degree %d", ErrInvalidParams, maxDegree)
	}
	g := &Graph{
		neurons:   make([]Neuron, len(points)),
		maxDegree: maxDegree,
		info:      BuildInfo{Input: len(points)},
	}
	for i, p := range points {
		if !p.finite() {
			return nil, fmt.Errorf("%w: point %d is %v", ErrInvalidPoint, i, p)
		}
		g.neurons[i].Point = p
	}
	for _, l := range links {
		a, b := l[0], l[1]
		if !g.Valid(a) || !g.Valid(b) || a == b {
			return nil, fmt.Errorf("%w: link %d-%d", ErrInvalidParams, a, b)
		}
		g.neurons[a].addAdjacent(b, maxDegree)
		g.neurons[b].addAdjacent(a, maxDegree)
	}
	return g, nil
}
