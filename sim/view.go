package sim

import "github.com/pthm-cable/synapse/components"

// OrbView is a read-only look at one live orb for presentation.
type OrbView struct {
	ID       uint32
	Pos      components.Position
	Trail    *components.Trail // oldest first; do not modify
	Body     components.Body
	State    components.OrbState
	Velocity float32
	Legs     int
}

// EachOrb calls fn for every live orb. fn must not spawn or step.
func (s *Simulation) EachOrb(fn func(OrbView)) {
	query := s.orbFilter.Query()
	for query.Next() {
		pos, walker, trail, body, id := query.Get()
		fn(OrbView{
			ID:       id.ID,
			Pos:      *pos,
			Trail:    trail,
			Body:     *body,
			State:    walker.State(),
			Velocity: walker.Velocity,
			Legs:     walker.DistanceTraveled,
		})
	}
}

// Orbs returns a snapshot of every live orb.
func (s *Simulation) Orbs() []OrbView {
	out := make([]OrbView, 0, s.orbCount)
	s.EachOrb(func(v OrbView) {
		out = append(out, v)
	})
	return out
}
