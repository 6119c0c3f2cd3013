package shapes

import (
	"math/rand"
	"sync"
)

// Source supplies shapes for new pieces.
type Source interface {
	Draw() Shape
}

// RandomSource draws uniformly from the catalog.
type RandomSource struct {
	lock sync.Mutex
	rng  *rand.Rand
}

// NewRandomSource creates a RandomSource seeded with seed.
// Equal seeds produce equal draw sequences.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Draw returns a uniformly chosen catalog shape.
func (s *RandomSource) Draw() Shape {
	s.lock.Lock()
	defer s.lock.Unlock()
	return Random(s.rng)
}

// Random returns a uniformly chosen catalog shape using rng.
func Random(rng *rand.Rand) Shape {
	return At(rng.Intn(Len()))
}

// SequenceSource cycles through a fixed list of shapes.
// It is used to replay games and to script tests.
type SequenceSource struct {
	shapes []Shape
	next   int
}

// NewSequenceSource creates a SequenceSource over shapes. It panics when
// shapes is empty.
func NewSequenceSource(shapes ...Shape) *SequenceSource {
	if len(shapes) == 0 {
		panic("sequence source needs at least one shape")
	}
	return &SequenceSource{shapes: shapes}
}

// Draw returns the next shape in the sequence, wrapping around at the end.
func (s *SequenceSource) Draw() Shape {
	shape := s.shapes[s.next]
	s.next = (s.next + 1) % len(s.shapes)
	return shape
}
