// Package components defines ECS components for orbs walking the neuron graph.
package components

import "github.com/pthm-cable/synapse/graph"

// OrbState is the lifecycle phase of an orb.
type OrbState uint8

const (
	OrbIdle     OrbState = iota // No target; seeded on a neuron without links
	OrbWalking                  // Advancing toward Walker.Next
	OrbRetiring                 // Marked for removal by the simulation loop
)

func (s OrbState) String() string {
	switch s {
	case OrbIdle:
		return "idle"
	case OrbWalking:
		return "walking"
	case OrbRetiring:
		return "retiring"
	}
	return "unknown"
}

// Walker holds an orb's progress through the graph. Next and Previous are
// lookups into the graph arena; the orb owns neither neuron.
type Walker struct {
	Velocity          float32        // per-axis step, drawn once at spawn
	Next              graph.NeuronID // target neuron, NoNeuron while idle
	Previous          graph.NeuronID // neuron departed from, avoided on arrival
	DistanceTraveled  int            // legs started, not Euclidean distance
	MarkedForDeletion bool
}

// State derives the lifecycle phase.
func (w *Walker) State() OrbState {
	switch {
	case w.MarkedForDeletion:
		return OrbRetiring
	case w.Next == graph.NoNeuron:
		return OrbIdle
	default:
		return OrbWalking
	}
}

// Identity tags an orb with a stable id and the tick it was spawned on.
type Identity struct {
	ID        uint32
	BirthTick int32
}
