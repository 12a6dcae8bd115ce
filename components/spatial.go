package components

import "github.com/pthm-cable/synapse/graph"

// Position represents an orb's world position.
type Position struct {
	X, Y, Z float32
}

// PositionAt returns the position of a graph point.
func PositionAt(p graph.Point) Position {
	return Position{X: p.X, Y: p.Y, Z: p.Z}
}
