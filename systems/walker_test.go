package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/rng"
)

func assemble(t *testing.T, pts []graph.Point, links ...[2]graph.NeuronID) *graph.Graph {
	t.Helper()
	g, err := graph.Assemble(pts, links, 4)
	require.NoError(t, err)
	return g
}

func TestSpawnOrbVelocityScaling(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}, [2]graph.NeuronID{0, 1})

	for draw := 4; draw <= 10; draw++ {
		o := SpawnOrb(g, 0, &rng.Sequence{Values: []int{draw, 0}}, DefaultOrbParams())
		assert.Equal(t, float32(draw)/10, o.Walker.Velocity)
	}
}

func TestSpawnOrbWalking(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 0, Y: 10, Z: 0}},
		[2]graph.NeuronID{0, 1}, [2]graph.NeuronID{0, 2})

	o := SpawnOrb(g, 0, &rng.Sequence{Values: []int{7, 1}}, DefaultOrbParams())

	assert.Equal(t, components.OrbWalking, o.Walker.State())
	assert.Equal(t, graph.NeuronID(2), o.Walker.Next)
	assert.Equal(t, graph.NeuronID(0), o.Walker.Previous)
	assert.Equal(t, 1, o.Walker.DistanceTraveled)
	assert.Equal(t, components.Position{}, o.Pos)
	assert.Equal(t, 0, o.Trail.Len())
	assert.Equal(t, 25, o.Trail.Cap())
	assert.Equal(t, float32(7), o.Body.Size)
}

func TestSpawnOrbIdle(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 3, Y: 4, Z: 5}})
	src := &rng.Sequence{Values: []int{6}}

	o := SpawnOrb(g, 0, src, DefaultOrbParams())
	assert.Equal(t, components.OrbIdle, o.Walker.State())
	assert.Equal(t, 0, o.Walker.DistanceTraveled)

	// Idle orbs never move, draw, or retire
	for i := 0; i < 100; i++ {
		assert.False(t, o.Iterate(g, src))
	}
	assert.Equal(t, components.Position{X: 3, Y: 4, Z: 5}, o.Pos)
	assert.Equal(t, 0, o.Trail.Len())
	assert.Equal(t, 1, src.Drawn())
	assert.False(t, MarkRetirement(&o.Walker, 30))
}

func TestIterateArrivalAvoidsPrevious(t *testing.T) {
	// A -> B with B linked to A and C
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 5, Z: 0}},
		[2]graph.NeuronID{0, 1}, [2]graph.NeuronID{1, 2})
	const a, b, c = graph.NeuronID(0), graph.NeuronID(1), graph.NeuronID(2)

	// velocity 0.5, first target B, arrival draw lands on A
	src := &rng.Sequence{Values: []int{5, 0, 0}}
	o := SpawnOrb(g, a, src, DefaultOrbParams())
	require.Equal(t, b, o.Walker.Next)

	arrivals := 0
	for i := 0; i < 2; i++ {
		if o.Iterate(g, src) {
			arrivals++
		}
	}

	assert.Equal(t, 1, arrivals)
	assert.Equal(t, c, o.Walker.Next, "draw on A wraps forward to C")
	assert.Equal(t, b, o.Walker.Previous)
	assert.Equal(t, 2, o.Walker.DistanceTraveled)
	assert.Equal(t, 3, src.Drawn())
	assert.Equal(t, 2, o.Trail.Len())
}

func TestIterateAxisIndependentStep(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 10, Y: -10, Z: 0}}, [2]graph.NeuronID{0, 1})
	o := SpawnOrb(g, 0, &rng.Sequence{Values: []int{10, 0}}, DefaultOrbParams())

	o.Iterate(g, nil)

	// Equal targets count as "not above", so z moves down
	assert.Equal(t, components.Position{X: 1, Y: -1, Z: -1}, o.Pos)
	assert.Equal(t, []components.Position{{}}, o.Trail.AppendTo(nil))
	assert.Equal(t, [3]float32{0, 0, 0}, o.Body.Color)
}

func TestIterateConverges(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 4, Z: -7}}, [2]graph.NeuronID{0, 1})
	src := &rng.Sequence{Values: []int{5, 0, 0}}
	o := SpawnOrb(g, 0, src, DefaultOrbParams())
	target := g.Position(1)

	gap := func() float32 {
		return chebyshev(target.X-o.Pos.X, target.Y-o.Pos.Y, target.Z-o.Pos.Z)
	}

	prev := gap()
	steps := 0
	for !o.Iterate(g, src) {
		steps++
		require.Less(t, steps, 100, "no arrival")
		cur := gap()
		assert.Less(t, cur, prev)
		prev = cur
	}
	steps++

	// 10 units at 0.5 per step, arriving once within one step
	assert.Equal(t, 19, steps)
	// Degree one: the only choice is back where it came from
	assert.Equal(t, graph.NeuronID(0), o.Walker.Next)
	assert.Equal(t, graph.NeuronID(1), o.Walker.Previous)
}

func TestIterateDeadEnd(t *testing.T) {
	g := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 0.5, Y: 0, Z: 0}, {X: 9, Y: 9, Z: 9}}, [2]graph.NeuronID{0, 1})
	o := SpawnOrb(g, 0, &rng.Sequence{Values: []int{5, 0}}, DefaultOrbParams())

	// Drop B's link to simulate a neuron with no way out
	g2 := assemble(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 0.5, Y: 0, Z: 0}, {X: 9, Y: 9, Z: 9}})
	assert.True(t, o.Iterate(g2, nil))
	assert.Equal(t, components.OrbIdle, o.Walker.State())
}

func TestRandomWalkInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	pts := make([]graph.Point, 600)
	for i := range pts {
		pts[i] = graph.Point{X: r.Float32() * 160, Y: r.Float32() * 120, Z: r.Float32() * 120}
	}
	g, err := graph.Build(pts, graph.DefaultParams())
	require.NoError(t, err)
	require.Positive(t, g.Len())

	src := rng.New(9)
	p := DefaultOrbParams()
	orbs := make([]Orb, 0, 20)
	for i := 0; i < 20; i++ {
		orbs = append(orbs, SpawnOrb(g, graph.NeuronID(src.IntRange(0, g.Len()-1)), src, p))
	}

	for frame := 0; frame < 2000; frame++ {
		for i := range orbs {
			o := &orbs[i]
			before := o.Walker.Previous
			legs := o.Walker.DistanceTraveled

			arrived := o.Iterate(g, src)

			assert.LessOrEqual(t, o.Trail.Len(), p.MaxTrail)
			assert.True(t, slices.Contains(g.Adjacent(o.Walker.Previous), o.Walker.Next),
				"next must be linked from previous")
			if arrived {
				assert.Equal(t, legs+1, o.Walker.DistanceTraveled)
				if len(g.Adjacent(o.Walker.Previous)) > 1 {
					assert.NotEqual(t, before, o.Walker.Next, "backtracked from a branching neuron")
				}
			} else {
				assert.Equal(t, legs, o.Walker.DistanceTraveled)
			}
		}
	}
	for i := range orbs {
		assert.Equal(t, p.MaxTrail, orbs[i].Trail.Len())
	}
}

func TestMarkRetirement(t *testing.T) {
	w := components.Walker{DistanceTraveled: 30}
	assert.False(t, MarkRetirement(&w, 30))
	assert.Equal(t, components.OrbWalking, w.State())

	w.DistanceTraveled = 31
	assert.True(t, MarkRetirement(&w, 30))
	assert.Equal(t, components.OrbRetiring, w.State())

	// Retirement is sticky
	w.DistanceTraveled = 0
	assert.True(t, MarkRetirement(&w, 30))
}
