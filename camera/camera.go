// Package camera provides orbit camera math for viewing the neuron graph.
package camera

import (
	"math"

	"github.com/pthm-cable/synapse/graph"
)

// Orbit circles the origin on the horizontal plane, looking at Target.
// The angle is driven by the simulation frame clock.
type Orbit struct {
	// Angle around the vertical axis in radians
	Angle float32

	// Horizontal distance from the orbit axis, and eye height
	Distance, Height float32

	// Vertical field of view in degrees
	Fovy float32

	Target graph.Point

	// Zoom constraints on Distance
	MinDistance, MaxDistance float32
}

// New creates an orbit camera at angle 0 looking at the origin.
func New(distance, height, fovy float32) *Orbit {
	return &Orbit{
		Distance:    distance,
		Height:      height,
		Fovy:        fovy,
		MinDistance: distance / 4,
		MaxDistance: distance * 3,
	}
}

// Eye returns the camera position in world coordinates.
func (c *Orbit) Eye() graph.Point {
	sin, cos := math.Sincos(float64(c.Angle))
	return graph.Point{
		X: c.Target.X + c.Distance*float32(sin),
		Y: c.Target.Y + c.Height,
		Z: c.Target.Z + c.Distance*float32(cos),
	}
}

// RotateY rotates p about the vertical axis through Target by -Angle, which
// puts it in a frame where the eye sits on +Z.
func (c *Orbit) RotateY(p graph.Point) graph.Point {
	sin, cos := math.Sincos(float64(c.Angle))
	s, k := float32(sin), float32(cos)
	x, z := p.X-c.Target.X, p.Z-c.Target.Z
	return graph.Point{
		X: c.Target.X + x*k - z*s,
		Y: p.Y,
		Z: c.Target.Z + x*s + z*k,
	}
}

// Depth is how far p lies toward the eye from the orbit axis. Points behind
// the axis are negative.
func (c *Orbit) Depth(p graph.Point) float32 {
	return c.RotateY(p).Z - c.Target.Z
}

// Zoom moves the eye toward (negative delta) or away from the axis.
func (c *Orbit) Zoom(delta float32) {
	c.Distance = clamp(c.Distance+delta, c.MinDistance, c.MaxDistance)
}

// DepthFade maps depth over [near, far] to an alpha in [0, 1]: far maps to 0,
// near to 1. Callers pass near < far for "fade out behind".
func DepthFade(depth, far, near float32) float32 {
	if near == far {
		if depth >= near {
			return 1
		}
		return 0
	}
	return clamp((depth-far)/(near-far), 0, 1)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
