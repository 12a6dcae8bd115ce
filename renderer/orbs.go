package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/synapse/camera"
	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/sim"
)

// sizeScale converts orb Size into world units.
const sizeScale = 0.2

// OrbRenderer draws orbs and their decaying trails.
type OrbRenderer struct {
	noise opensimplex.Noise
	Fade  [2]float32 // depth mapped to alpha 0 and alpha 1

	// Size pulse driven by simplex noise over the frame clock
	Pulse float32
}

// NewOrbRenderer creates an orb renderer with a seeded pulse.
func NewOrbRenderer(seed int64) *OrbRenderer {
	return &OrbRenderer{
		noise: opensimplex.New(seed),
		Fade:  [2]float32{-150, 0},
		Pulse: 0.15,
	}
}

// Draw renders every live orb. Must be called inside BeginMode3D.
func (r *OrbRenderer) Draw(s *sim.Simulation, cam *camera.Orbit) {
	t := float64(s.Frame().Time)

	s.EachOrb(func(o sim.OrbView) {
		head := graph.Point{X: o.Pos.X, Y: o.Pos.Y, Z: o.Pos.Z}
		alpha := camera.DepthFade(cam.Depth(head), r.Fade[0], r.Fade[1])
		if alpha <= 0 {
			return
		}

		color := orbColor(o.Body.Color)
		pulse := 1 + r.Pulse*float32(r.noise.Eval2(float64(o.ID)*0.61, t))
		radius := o.Body.Size * sizeScale * pulse

		for i := 0; i < o.Trail.Len(); i++ {
			w := o.Trail.Weight(i)
			if w <= 0 {
				continue
			}
			p := o.Trail.At(i)
			rl.DrawSphereEx(posVec(p), radius*w, 4, 4, rl.Fade(color, alpha*w))
		}
		rl.DrawSphereEx(posVec(o.Pos), radius, 6, 6, rl.Fade(color, alpha))
	})
}

// orbColor maps a world position onto a smoothly varying hue.
func orbColor(seed [3]float32) rl.Color {
	channel := func(v float32) uint8 {
		return uint8(140 + 115*math.Sin(float64(v)*0.02))
	}
	return rl.Color{R: channel(seed[0]), G: channel(seed[1]), B: channel(seed[2]), A: 255}
}

func posVec(p components.Position) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, p.Z)
}
