package components

// Trail is a fixed-capacity ring of past positions. Pushing onto a full
// trail evicts the oldest entry.
type Trail struct {
	points []Position
	head   int // index of the oldest entry
	n      int
}

// NewTrail creates an empty trail holding up to capacity positions.
func NewTrail(capacity int) Trail {
	return Trail{points: make([]Position, capacity)}
}

// Push appends p, evicting the oldest entry when full.
func (t *Trail) Push(p Position) {
	if len(t.points) == 0 {
		return
	}
	if t.n < len(t.points) {
		t.points[(t.head+t.n)%len(t.points)] = p
		t.n++
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % len(t.points)
}

// Len returns the number of stored positions.
func (t *Trail) Len() int {
	return t.n
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int {
	return len(t.points)
}

// At returns the i-th position, oldest first.
func (t *Trail) At(i int) Position {
	return t.points[(t.head+i)%len(t.points)]
}

// AppendTo appends the stored positions to dst, oldest first.
func (t *Trail) AppendTo(dst []Position) []Position {
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}

// Weight returns i/Len, the fade applied to the i-th entry so the oldest
// entry vanishes and the newest is nearly full strength.
func (t *Trail) Weight(i int) float32 {
	if t.n == 0 {
		return 0
	}
	return float32(i) / float32(t.n)
}
