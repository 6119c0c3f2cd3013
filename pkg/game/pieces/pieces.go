package pieces

import (
	"fmt"

	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
)

// Piece is an offered instance of a shape.
type Piece struct {
	ID       uint32
	Shape    shapes.Shape
	Consumed bool
}

// View returns the read-only representation of the piece.
func (p Piece) View() types.PieceView {
	return types.PieceView{
		ID:       p.ID,
		Shape:    p.Shape,
		Consumed: p.Consumed,
	}
}

// Set holds a fixed number of piece slots. Slots are refilled together,
// never one at a time.
type Set struct {
	slots  []Piece
	source shapes.Source
	nextID uint32
}

// New creates a set of n slots drawing from source and fills it.
func New(n int, source shapes.Source) (*Set, error) {
	if n < 1 {
		return nil, fmt.Errorf("piece set needs at least one slot, got %d", n)
	}
	if source == nil {
		return nil, fmt.Errorf("piece set needs a shape source")
	}
	s := &Set{
		slots:  make([]Piece, n),
		source: source,
		nextID: 1,
	}
	s.RefillAll()
	return s, nil
}

// RefillAll replaces every slot with a freshly drawn, unconsumed piece.
func (s *Set) RefillAll() {
	for i := range s.slots {
		s.slots[i] = Piece{
			ID:    s.nextID,
			Shape: s.source.Draw(),
		}
		s.nextID++
	}
}

// Len returns the number of slots.
func (s *Set) Len() int {
	return len(s.slots)
}

// Piece returns the piece in slot i. It fails with ErrInvalidPiece when i is out of range.
func (s *Set) Piece(i int) (Piece, error) {
	if i < 0 || i >= len(s.slots) {
		return Piece{}, fmt.Errorf("piece index %d out of range [0, %d): %w", i, len(s.slots), types.ErrInvalidPiece)
	}
	return s.slots[i], nil
}

// Available returns the piece in slot i if it can still be played.
func (s *Set) Available(i int) (Piece, error) {
	p, err := s.Piece(i)
	if err != nil {
		return Piece{}, err
	}
	if p.Consumed {
		return Piece{}, fmt.Errorf("piece %d already consumed: %w", i, types.ErrInvalidPiece)
	}
	return p, nil
}

// Consume marks slot i as used.
func (s *Set) Consume(i int) error {
	if _, err := s.Available(i); err != nil {
		return err
	}
	s.slots[i].Consumed = true
	return nil
}

// AllConsumed reports whether every slot has been used.
func (s *Set) AllConsumed() bool {
	for _, p := range s.slots {
		if !p.Consumed {
			return false
		}
	}
	return true
}

// Pieces returns a copy of all slots in order.
func (s *Set) Pieces() []Piece {
	return append([]Piece(nil), s.slots...)
}

// Unconsumed returns the pieces that can still be played, in slot order.
func (s *Set) Unconsumed() []Piece {
	var out []Piece
	for _, p := range s.slots {
		if !p.Consumed {
			out = append(out, p)
		}
	}
	return out
}

// Views returns the read-only representation of every slot.
func (s *Set) Views() []types.PieceView {
	out := make([]types.PieceView, len(s.slots))
	for i, p := range s.slots {
		out[i] = p.View()
	}
	return out
}

// IDs returns the identifiers of every slot in order.
func (s *Set) IDs() []uint32 {
	out := make([]uint32, len(s.slots))
	for i, p := range s.slots {
		out[i] = p.ID
	}
	return out
}
