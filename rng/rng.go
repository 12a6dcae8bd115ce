// Package rng provides the injected random source used by graph walkers.
package rng

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Source supplies uniformly distributed integers in an inclusive range.
type Source interface {
	IntRange(min, max int) int
}

// Rand is a seeded Source backed by math/rand.
// Not safe for concurrent use; wrap it in Locked or Derive one per goroutine.
type Rand struct {
	r *rand.Rand
}

// New creates a Rand with the given seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [min, max]. Swapped bounds are accepted.
func (r *Rand) IntRange(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return r.r.Intn(max-min+1) + min
}

// Derive creates an independent Rand seeded from src.
func Derive(src Source) *Rand {
	return New(int64(src.IntRange(0, math.MaxInt32)))
}

// Locked serializes access to a Source shared across goroutines.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// IntRange implements Source.
func (l *Locked) IntRange(min, max int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntRange(min, max)
}

// Choice returns a uniformly selected element of items. items must not be empty.
func Choice[T any](src Source, items []T) T {
	return items[src.IntRange(0, len(items)-1)]
}

// ChoiceExcluding selects like Choice, but when the draw lands on excluded it
// takes the next element in order, wrapping around. A single-element slice
// always yields that element, even if it is the excluded one.
func ChoiceExcluding[T comparable](src Source, items []T, excluded T) T {
	i := src.IntRange(0, len(items)-1)
	if items[i] == excluded {
		return items[(i+1)%len(items)]
	}
	return items[i]
}

// Sequence replays a fixed list of draws. Used to script walker decisions.
type Sequence struct {
	Values []int
	next   int
}

// IntRange returns the next scripted value. It panics when the script is
// exhausted or the value falls outside [min, max].
func (s *Sequence) IntRange(min, max int) int {
	if min > max {
		min, max = max, min
	}
	if s.next >= len(s.Values) {
		panic(fmt.Sprintf("rng: sequence exhausted after %d draws", s.next))
	}
	v := s.Values[s.next]
	s.next++
	if v < min || v > max {
		panic(fmt.Sprintf("rng: scripted value %d outside [%d, %d]", v, min, max))
	}
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.next
}
