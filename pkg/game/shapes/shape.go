package shapes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape is an immutable polyomino mask. Rows are indexed top to bottom
// and columns left to right; the top-left corner is the placement anchor.
type Shape struct {
	mask  [][]bool
	cells int
}

// NewShape validates mask and returns a Shape holding a private copy of it.
// The mask must be rectangular, at least 1x1 and contain a filled cell.
func NewShape(mask [][]bool) (Shape, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return Shape{}, fmt.Errorf("shape must be at least 1x1")
	}
	cols := len(mask[0])
	cells := 0
	copied := make([][]bool, len(mask))
	for r, row := range mask {
		if len(row) != cols {
			return Shape{}, fmt.Errorf("shape row %d has %d columns, expected %d", r, len(row), cols)
		}
		copied[r] = make([]bool, cols)
		for c, filled := range row {
			copied[r][c] = filled
			if filled {
				cells++
			}
		}
	}
	if cells == 0 {
		return Shape{}, fmt.Errorf("shape has no filled cells")
	}
	return Shape{mask: copied, cells: cells}, nil
}

// MustShape is like NewShape but panics on an invalid mask.
// It is meant for static tables.
func MustShape(mask [][]bool) Shape {
	s, err := NewShape(mask)
	if err != nil {
		panic(fmt.Sprintf("invalid shape: %v", err))
	}
	return s
}

// FromRows builds a shape from strings where '#' marks a filled cell,
// e.g. FromRows("##", "#.").
func FromRows(rows ...string) (Shape, error) {
	mask := make([][]bool, len(rows))
	for r, row := range rows {
		mask[r] = make([]bool, len(row))
		for c, ch := range row {
			mask[r][c] = ch == '#'
		}
	}
	return NewShape(mask)
}

// Rows returns the height of the bounding box.
func (s Shape) Rows() int {
	return len(s.mask)
}

// Cols returns the width of the bounding box.
func (s Shape) Cols() int {
	if len(s.mask) == 0 {
		return 0
	}
	return len(s.mask[0])
}

// Filled reports whether the cell at row r, column c is part of the shape.
// Coordinates outside the bounding box are never filled.
func (s Shape) Filled(r, c int) bool {
	if r < 0 || r >= len(s.mask) || c < 0 || c >= len(s.mask[r]) {
		return false
	}
	return s.mask[r][c]
}

// CellCount returns the number of filled cells.
func (s Shape) CellCount() int {
	return s.cells
}

// IsZero reports whether s is the zero Shape (not built through NewShape).
func (s Shape) IsZero() bool {
	return s.cells == 0
}

// Mask returns a copy of the shape's mask.
func (s Shape) Mask() [][]bool {
	out := make([][]bool, len(s.mask))
	for r, row := range s.mask {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

// Equal reports whether both shapes have the same mask.
func (s Shape) Equal(other Shape) bool {
	if s.Rows() != other.Rows() || s.Cols() != other.Cols() {
		return false
	}
	for r := range s.mask {
		for c := range s.mask[r] {
			if s.mask[r][c] != other.mask[r][c] {
				return false
			}
		}
	}
	return true
}

func (s Shape) String() string {
	var b strings.Builder
	for r, row := range s.mask {
		if r > 0 {
			b.WriteByte('/')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// MarshalJSON encodes the shape as a matrix of 0/1 values.
func (s Shape) MarshalJSON() ([]byte, error) {
	out := make([][]uint8, len(s.mask))
	for r, row := range s.mask {
		out[r] = make([]uint8, len(row))
		for c, filled := range row {
			if filled {
				out[r][c] = 1
			}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a matrix of 0/1 values and validates it.
func (s *Shape) UnmarshalJSON(b []byte) error {
	var in [][]uint8
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	mask := make([][]bool, len(in))
	for r, row := range in {
		mask[r] = make([]bool, len(row))
		for c, v := range row {
			mask[r][c] = v != 0
		}
	}
	shape, err := NewShape(mask)
	if err != nil {
		return err
	}
	*s = shape
	return nil
}
