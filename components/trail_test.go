package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/synapse/graph"
)

func TestTrailEvictsOldest(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Push(Position{X: float32(i)})
	}

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []Position{{X: 2}, {X: 3}, {X: 4}}, tr.AppendTo(nil))
}

func TestTrailPartial(t *testing.T) {
	tr := NewTrail(25)
	tr.Push(Position{X: 1})
	tr.Push(Position{X: 2})

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 25, tr.Cap())
	assert.Equal(t, Position{X: 1}, tr.At(0))
	assert.Equal(t, Position{X: 2}, tr.At(1))
}

func TestTrailBounded(t *testing.T) {
	tr := NewTrail(25)
	for i := 0; i < 1000; i++ {
		tr.Push(Position{Y: float32(i)})
		assert.LessOrEqual(t, tr.Len(), 25)
	}
	assert.Equal(t, float32(975), tr.At(0).Y)
	assert.Equal(t, float32(999), tr.At(24).Y)
}

func TestTrailZeroCapacity(t *testing.T) {
	var tr Trail
	tr.Push(Position{X: 1})
	assert.Equal(t, 0, tr.Len())
}

func TestWalkerState(t *testing.T) {
	w := Walker{Next: graph.NoNeuron, Previous: graph.NoNeuron}
	assert.Equal(t, OrbIdle, w.State())

	w.Next = 3
	assert.Equal(t, OrbWalking, w.State())

	w.MarkedForDeletion = true
	assert.Equal(t, OrbRetiring, w.State())
	assert.Equal(t, "retiring", w.State().String())
}

func TestTrailWeight(t *testing.T) {
	tr := NewTrail(4)
	assert.Zero(t, tr.Weight(0))

	for i := 0; i < 4; i++ {
		tr.Push(Position{})
	}
	assert.Equal(t, []float32{0, 0.25, 0.5, 0.75},
		[]float32{tr.Weight(0), tr.Weight(1), tr.Weight(2), tr.Weight(3)})
}
