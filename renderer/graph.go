// Package renderer draws the neuron graph and its orbs with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/camera"
	"github.com/pthm-cable/synapse/graph"
)

type edge struct {
	a, b graph.Point
}

// GraphRenderer draws neurons as points and links as lines, faded by depth.
type GraphRenderer struct {
	neurons []graph.Point
	edges   []edge

	NeuronColor rl.Color
	EdgeColor   rl.Color
	Fade        [2]float32 // depth mapped to alpha 0 and alpha 1
}

// NewGraphRenderer caches neuron positions and edges of g.
func NewGraphRenderer(g *graph.Graph) *GraphRenderer {
	r := &GraphRenderer{
		neurons:     make([]graph.Point, 0, g.Len()),
		NeuronColor: rl.Color{R: 200, G: 210, B: 255, A: 255},
		EdgeColor:   rl.Color{R: 90, G: 110, B: 160, A: 255},
		Fade:        [2]float32{-150, 100},
	}
	g.Each(func(_ graph.NeuronID, n *graph.Neuron) {
		r.neurons = append(r.neurons, n.Point)
	})
	g.EachEdge(func(a, b graph.NeuronID) {
		r.edges = append(r.edges, edge{a: g.Position(a), b: g.Position(b)})
	})
	return r
}

// Draw renders the graph. Must be called inside BeginMode3D.
func (r *GraphRenderer) Draw(cam *camera.Orbit) {
	for _, e := range r.edges {
		alpha := camera.DepthFade(cam.Depth(midpoint(e.a, e.b)), r.Fade[0], r.Fade[1])
		if alpha <= 0 {
			continue
		}
		rl.DrawLine3D(vec(e.a), vec(e.b), rl.Fade(r.EdgeColor, alpha*0.5))
	}

	for _, p := range r.neurons {
		alpha := camera.DepthFade(cam.Depth(p), r.Fade[0], r.Fade[1])
		if alpha <= 0 {
			continue
		}
		rl.DrawPoint3D(vec(p), rl.Fade(r.NeuronColor, alpha))
	}
}

func midpoint(a, b graph.Point) graph.Point {
	return graph.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

func vec(p graph.Point) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, p.Z)
}
