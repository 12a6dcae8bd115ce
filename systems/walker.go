// Package systems provides the per-frame orb behaviour.
package systems

import (
	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/rng"
)

// OrbParams controls how orbs are spawned and retired.
type OrbParams struct {
	MaxTrail        int
	VelocityMin     int     // inclusive bounds of the integer velocity draw
	VelocityMax     int     //
	VelocityDivisor float32 // the draw is divided by this
	Size            float32
	MaxWalkDistance int // legs walked before the loop retires an orb
}

// DefaultOrbParams returns speeds in [0.4, 1.0] at 0.1 resolution, a trail of
// 25 and retirement after 30 legs.
func DefaultOrbParams() OrbParams {
	return OrbParams{
		MaxTrail:        25,
		VelocityMin:     4,
		VelocityMax:     10,
		VelocityDivisor: 10,
		Size:            7,
		MaxWalkDistance: 30,
	}
}

// OrbParamsFromConfig maps the orbs section of cfg.
func OrbParamsFromConfig(cfg *config.Config) OrbParams {
	return OrbParams{
		MaxTrail:        cfg.Orbs.MaxTrail,
		VelocityMin:     cfg.Derived.VelocityMinSteps,
		VelocityMax:     cfg.Derived.VelocityMaxSteps,
		VelocityDivisor: cfg.Derived.VelocityDivisor,
		Size:            cfg.Derived.OrbSize32,
		MaxWalkDistance: cfg.Orbs.MaxWalkDistance,
	}
}

// Orb bundles the components of one orb outside the ECS world.
type Orb struct {
	Pos    components.Position
	Walker components.Walker
	Trail  components.Trail
	Body   components.Body
}

// SpawnOrb places an orb on seed. It draws a velocity, then picks one of the
// seed's neighbors to walk toward. A seed without neighbors leaves the orb idle.
func SpawnOrb(g *graph.Graph, seed graph.NeuronID, src rng.Source, p OrbParams) Orb {
	pos := components.PositionAt(g.Position(seed))
	o := Orb{
		Pos: pos,
		Walker: components.Walker{
			Velocity: float32(src.IntRange(p.VelocityMin, p.VelocityMax)) / p.VelocityDivisor,
			Next:     graph.NoNeuron,
			Previous: graph.NoNeuron,
		},
		Trail: components.NewTrail(p.MaxTrail),
		Body: components.Body{
			Size:  p.Size,
			Color: [3]float32{pos.X, pos.Y, pos.Z},
		},
	}

	if adj := g.Adjacent(seed); len(adj) > 0 {
		o.Walker.Previous = seed
		o.Walker.Next = rng.Choice(src, adj)
		o.Walker.DistanceTraveled = 1
	}
	return o
}

// Iterate advances o by one frame. See IterateOrb.
func (o *Orb) Iterate(g *graph.Graph, src rng.Source) bool {
	return IterateOrb(g, src, &o.Pos, &o.Walker, &o.Trail, &o.Body)
}

// IterateOrb advances an orb by one frame and reports whether it arrived at
// its target. Idle orbs are left untouched.
//
// Each axis moves by exactly Velocity toward the target, so diagonal legs are
// covered faster than axial ones. On arrival the next target is drawn from
// the reached neuron's links, stepping past the neuron just departed from.
func IterateOrb(g *graph.Graph, src rng.Source, pos *components.Position, w *components.Walker,
	trail *components.Trail, body *components.Body) bool {
	if w.Next == graph.NoNeuron {
		return false
	}

	trail.Push(*pos)
	body.Color = [3]float32{pos.X, pos.Y, pos.Z}

	target := g.Position(w.Next)
	pos.X += axisStep(target.X, pos.X, w.Velocity)
	pos.Y += axisStep(target.Y, pos.Y, w.Velocity)
	pos.Z += axisStep(target.Z, pos.Z, w.Velocity)

	if !Approached(*pos, target, w.Velocity) {
		return false
	}

	adj := g.Adjacent(w.Next)
	if len(adj) == 0 {
		// Dead end, only reachable in hand-assembled graphs
		w.Previous, w.Next = w.Next, graph.NoNeuron
		return true
	}
	next := rng.ChoiceExcluding(src, adj, w.Previous)
	w.Previous, w.Next = w.Next, next
	w.DistanceTraveled++
	return true
}

// Approached reports whether pos is within velocity of target on every axis.
func Approached(pos components.Position, target graph.Point, velocity float32) bool {
	return absf(target.X-pos.X) <= velocity &&
		absf(target.Y-pos.Y) <= velocity &&
		absf(target.Z-pos.Z) <= velocity
}

// ShouldRetire reports whether an orb has walked past the retirement threshold.
func ShouldRetire(w *components.Walker, maxWalk int) bool {
	return w.DistanceTraveled > maxWalk
}

// MarkRetirement flags w for deletion once it passes maxWalk legs.
func MarkRetirement(w *components.Walker, maxWalk int) bool {
	if ShouldRetire(w, maxWalk) {
		w.MarkedForDeletion = true
	}
	return w.MarkedForDeletion
}
