package sim

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/synapse/components"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/rng"
	"github.com/pthm-cable/synapse/systems"
)

// orbRef points into ECS storage for the duration of one step. No entity is
// added or removed while refs are live.
type orbRef struct {
	entity ecs.Entity
	id     uint32
	pos    *components.Position
	walker *components.Walker
	trail  *components.Trail
	body   *components.Body
}

type retiredOrb struct {
	entity    ecs.Entity
	id        uint32
	birthTick int32
}

// workBatch tells a worker to take every stride-th chunk starting at first.
type workBatch struct {
	first, stride, chunks int
}

// parallelState steps walking orbs in fixed-size chunks. Each chunk draws from
// its own source, so results do not depend on how chunks map to workers.
type parallelState struct {
	sim        *Simulation
	refs       []orbRef
	arrived    []bool
	retired    []retiredOrb
	sources    []*rng.Rand
	numWorkers int

	// Worker pool channels
	workChan chan workBatch
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(s *Simulation, workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		sim:        s,
		numWorkers: workers,
		refs:       make([]orbRef, 0, 512),
		arrived:    make([]bool, 0, 512),
	}
}

// collect marks orbs past maxWalk for retirement and gathers the rest.
// Idle orbs are skipped; they never move.
func (p *parallelState) collect(maxWalk int) {
	p.refs = p.refs[:0]

	query := p.sim.orbFilter.Query()
	for query.Next() {
		pos, walker, trail, body, id := query.Get()

		if systems.MarkRetirement(walker, maxWalk) {
			p.retired = append(p.retired, retiredOrb{
				entity:    query.Entity(),
				id:        id.ID,
				birthTick: id.BirthTick,
			})
			continue
		}
		if walker.Next == graph.NoNeuron {
			continue
		}

		p.refs = append(p.refs, orbRef{
			entity: query.Entity(),
			id:     id.ID,
			pos:    pos,
			walker: walker,
			trail:  trail,
			body:   body,
		})
	}
}

// step iterates every collected orb once.
func (p *parallelState) step() {
	n := len(p.refs)
	if cap(p.arrived) < n {
		p.arrived = make([]bool, n)
	}
	p.arrived = p.arrived[:n]
	clear(p.arrived)
	if n == 0 {
		return
	}

	size := p.sim.opts.ChunkSize
	chunks := (n + size - 1) / size
	for len(p.sources) < chunks {
		p.sources = append(p.sources, rng.Derive(p.sim.src))
	}

	if chunks < 2 || p.numWorkers < 2 {
		for c := 0; c < chunks; c++ {
			p.stepChunk(c)
		}
		return
	}

	if !p.running {
		p.startWorkers()
	}

	workers := min(p.numWorkers, chunks)
	for w := 0; w < workers; w++ {
		p.workChan <- workBatch{first: w, stride: workers, chunks: chunks}
	}
	for w := 0; w < workers; w++ {
		<-p.doneChan
	}
}

// stepChunk iterates the orbs of chunk c with that chunk's source.
func (p *parallelState) stepChunk(c int) {
	size := p.sim.opts.ChunkSize
	start := c * size
	end := min(start+size, len(p.refs))
	src := p.sources[c]
	g := p.sim.graph

	for i := start; i < end; i++ {
		ref := &p.refs[i]
		p.arrived[i] = systems.IterateOrb(g, src, ref.pos, ref.walker, ref.trail, ref.body)
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workBatch, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes batches until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case batch, ok := <-p.workChan:
			if !ok {
				return
			}
			for c := batch.first; c < batch.chunks; c += batch.stride {
				p.stepChunk(c)
			}
			p.doneChan <- struct{}{}
		}
	}
}
