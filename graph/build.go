package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/pthm-cable/synapse/config"
)

var (
	// ErrInvalidParams is returned for unusable construction parameters.
	ErrInvalidParams = errors.New("invalid graph parameters")
	// ErrInvalidPoint is returned for NaN or infinite coordinates.
	ErrInvalidPoint = errors.New("invalid point")
)

// scansPerWindow is how many half-window steps are taken per window width of
// the cloud's max x. Consecutive windows overlap by half their width.
const scansPerWindow = 4

// Params controls graph construction.
type Params struct {
	MinDistance float64 // Neurons closer than this to any window peer are pruned
	MaxDistance float64 // Links form below this; also the scan window width
	MaxDegree   int
}

// DefaultParams returns the standard construction parameters.
func DefaultParams() Params {
	return Params{MinDistance: 5, MaxDistance: 25, MaxDegree: 4}
}

// ParamsFromConfig maps the graph section of cfg.
func ParamsFromConfig(c config.GraphConfig) Params {
	return Params{
		MinDistance: c.MinNeuronDistance,
		MaxDistance: c.MaxNeuronDistance,
		MaxDegree:   c.MaxDegree,
	}
}

// Validate checks that p can drive a build.
func (p Params) Validate() error {
	if math.IsNaN(p.MinDistance) || math.IsNaN(p.MaxDistance) ||
		math.IsInf(p.MaxDistance, 0) || p.MinDistance < 0 {
		return fmt.Errorf("%w: distances must be finite and non-negative", ErrInvalidParams)
	}
	if p.MaxDistance <= p.MinDistance {
		return fmt.Errorf("%w: max distance %.2f must exceed min distance %.2f",
			ErrInvalidParams, p.MaxDistance, p.MinDistance)
	}
	if p.MaxDegree < 1 {
		return fmt.Errorf("%w: max degree %d", ErrInvalidParams, p.MaxDegree)
	}
	return nil
}

// Build connects a point cloud into a graph.
//
// Neurons are sorted by x and scanned through overlapping x windows of width
// MaxDistance. Within a window every ordered pair is compared: a neuron closer
// than MinDistance to a peer is pruned, a pair closer than MaxDistance is
// linked both ways (subject to MaxDegree). Neurons left without links are
// dropped. Empty and single-point clouds yield an empty graph.
func Build(points []Point, p Params) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, pt := range points {
		if !pt.finite() {
			return nil, fmt.Errorf("%w: point %d is %v", ErrInvalidPoint, i, pt)
		}
	}

	b := newBuilder(points, p)
	b.scan()
	return b.finish(), nil
}

type builder struct {
	p       Params
	neurons []Neuron   // sorted by x; ids index this slice
	alive   []NeuronID // surviving ids, ascending x
	info    BuildInfo
}

func newBuilder(points []Point, p Params) *builder {
	sorted := slices.Clone(points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	b := &builder{
		p:       p,
		neurons: make([]Neuron, len(sorted)),
		alive:   make([]NeuronID, len(sorted)),
		info:    BuildInfo{Input: len(points)},
	}
	for i, pt := range sorted {
		b.neurons[i].Point = pt
		b.alive[i] = NeuronID(i)
	}
	return b
}

func (b *builder) scan() {
	if len(b.neurons) == 0 {
		return
	}
	minX := float64(b.neurons[0].X)
	maxX := float64(b.neurons[len(b.neurons)-1].X)

	// Bounds come from the cloud as given, not from the survivors.
	// The window count follows max x alone; windows past minX+iterations*MaxDistance/2
	// are never visited, and a cloud with max x <= 0 is not scanned at all.
	iterations := int(math.Ceil(maxX/b.p.MaxDistance)) * scansPerWindow
	for i := 0; i < iterations; i++ {
		lo := minX + (b.p.MaxDistance*float64(i))/2
		b.localPass(b.window(lo, lo+b.p.MaxDistance))
		b.info.Iterations++
	}
}

// window returns surviving neurons with x in [lo, hi].
func (b *builder) window(lo, hi float64) []NeuronID {
	start := sort.Search(len(b.alive), func(i int) bool {
		return float64(b.neurons[b.alive[i]].X) >= lo
	})
	end := start
	for end < len(b.alive) && float64(b.neurons[b.alive[end]].X) <= hi {
		end++
	}
	return slices.Clone(b.alive[start:end])
}

// localPass compares every ordered pair in the window. Pruned neurons are
// collected and removed once the pass completes.
func (b *builder) localPass(window []NeuronID) {
	var pruned []NeuronID
	for i, a := range window {
		for j, c := range window {
			if i == j {
				continue
			}
			d := b.neurons[a].Distance(b.neurons[c].Point)
			if d < b.p.MinDistance {
				pruned = append(pruned, a)
				break
			}
			if d < b.p.MaxDistance {
				b.neurons[a].addAdjacent(c, b.p.MaxDegree)
				b.neurons[c].addAdjacent(a, b.p.MaxDegree)
			}
		}
	}
	if len(pruned) > 0 {
		b.sweep(pruned)
	}
}

// sweep removes pruned neurons and every link that points at them.
func (b *builder) sweep(pruned []NeuronID) {
	gone := make(map[NeuronID]bool, len(pruned))
	for _, id := range pruned {
		gone[id] = true
		b.neurons[id].adjacent = nil
	}
	b.info.Pruned += len(gone)

	b.alive = slices.DeleteFunc(b.alive, func(id NeuronID) bool { return gone[id] })
	for _, id := range b.alive {
		n := &b.neurons[id]
		n.adjacent = slices.DeleteFunc(n.adjacent, func(adj NeuronID) bool { return gone[adj] })
	}
}

// finish drops lonely neurons and compacts survivors into a fresh arena.
func (b *builder) finish() *Graph {
	remap := make(map[NeuronID]NeuronID, len(b.alive))
	kept := make([]Neuron, 0, len(b.alive))
	for _, id := range b.alive {
		if b.neurons[id].Degree() == 0 {
			b.info.Lonely++
			continue
		}
		remap[id] = NeuronID(len(kept))
		kept = append(kept, b.neurons[id])
	}

	for i := range kept {
		adj := make([]NeuronID, 0, len(kept[i].adjacent))
		for _, old := range kept[i].adjacent {
			if id, ok := remap[old]; ok {
				adj = append(adj, id)
			}
		}
		kept[i].adjacent = adj
	}

	return &Graph{neurons: kept, maxDegree: b.p.MaxDegree, info: b.info}
}
