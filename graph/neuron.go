// Package graph builds the neuron connectivity graph walked by orbs.
//
// Neurons live in an arena owned by Graph and refer to each other by NeuronID,
// so the cyclic adjacency never forms an ownership cycle.
package graph

import (
	"fmt"
	"math"
	"slices"
)

// NeuronID indexes a neuron within its Graph.
type NeuronID int32

// NoNeuron marks an absent neuron reference.
const NoNeuron NeuronID = -1

// Point is a position in world space.
type Point struct {
	X, Y, Z float32
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := float64(p.X) - float64(q.X)
	dy := float64(p.Y) - float64(q.Y)
	dz := float64(p.Z) - float64(q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Point) finite() bool {
	for _, v := range [3]float32{p.X, p.Y, p.Z} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	return fmt.Sprintf("{%g, %g, %g}", p.X, p.Y, p.Z)
}

// Neuron is a fixed point with a capped list of adjacent neurons.
type Neuron struct {
	Point
	adjacent []NeuronID
}

// Adjacent returns the neuron's adjacency in insertion order. The slice is
// shared with the graph and must not be modified.
func (n *Neuron) Adjacent() []NeuronID {
	return n.adjacent
}

// Degree returns the number of adjacent neurons.
func (n *Neuron) Degree() int {
	return len(n.adjacent)
}

// addAdjacent links id unless it is already linked or the cap is reached.
// Attempts beyond the cap are dropped.
func (n *Neuron) addAdjacent(id NeuronID, maxDegree int) bool {
	if len(n.adjacent) >= maxDegree || slices.Contains(n.adjacent, id) {
		return false
	}
	n.adjacent = append(n.adjacent, id)
	return true
}
