package board

import (
	"fmt"

	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
)

// Board is a square grid of cells. Its size never changes after New.
// Cells are addressed as (x, y) with x the column and y the row.
type Board struct {
	size  int
	cells [][]types.CellState
}

// New creates an empty board of size x size cells.
func New(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	cells := make([][]types.CellState, size)
	for y := range cells {
		cells[y] = make([]types.CellState, size)
	}
	return &Board{
		size:  size,
		cells: cells,
	}, nil
}

// Size returns the width (and height) of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Cell returns the state of the cell at (x, y). Out of bounds cells read as filled.
func (b *Board) Cell(x, y int) types.CellState {
	if !b.inBounds(x, y) {
		return types.CellFilled
	}
	return b.cells[y][x]
}

// IsValidPosition reports whether (x, y) is on the board and empty.
func (b *Board) IsValidPosition(x, y int) bool {
	return b.inBounds(x, y) && b.cells[y][x] == types.CellEmpty
}

// CanPlace reports whether every filled cell of shape, anchored with its
// top-left corner at (anchorX, anchorY), lands on a valid position.
func (b *Board) CanPlace(shape shapes.Shape, anchorX, anchorY int) bool {
	if shape.IsZero() {
		return false
	}
	for r := 0; r < shape.Rows(); r++ {
		for c := 0; c < shape.Cols(); c++ {
			if !shape.Filled(r, c) {
				continue
			}
			if !b.IsValidPosition(anchorX+c, anchorY+r) {
				return false
			}
		}
	}
	return true
}

// Place fills the cells covered by shape at the given anchor.
// It returns ErrIllegalPlacement, leaving the board untouched, when CanPlace is false.
func (b *Board) Place(shape shapes.Shape, anchorX, anchorY int) error {
	if !b.CanPlace(shape, anchorX, anchorY) {
		return fmt.Errorf("shape %s at (%d, %d): %w", shape, anchorX, anchorY, types.ErrIllegalPlacement)
	}
	for r := 0; r < shape.Rows(); r++ {
		for c := 0; c < shape.Cols(); c++ {
			if shape.Filled(r, c) {
				b.cells[anchorY+r][anchorX+c] = types.CellFilled
			}
		}
	}
	return nil
}

// CompletedLines returns the indexes of the rows and columns that are
// entirely filled, without modifying the board.
func (b *Board) CompletedLines() (rows, cols []int) {
	for y := 0; y < b.size; y++ {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	for x := 0; x < b.size; x++ {
		if b.columnFull(x) {
			cols = append(cols, x)
		}
	}
	return rows, cols
}

// ClearLines empties every completed row and column and reports which were cleared.
// Rows and columns are both determined from the grid as it was before any
// clearing, so a cell shared by a full row and a full column counts toward both.
func (b *Board) ClearLines() (rows, cols []int) {
	rows, cols = b.CompletedLines()
	for _, y := range rows {
		for x := 0; x < b.size; x++ {
			b.cells[y][x] = types.CellEmpty
		}
	}
	for _, x := range cols {
		for y := 0; y < b.size; y++ {
			b.cells[y][x] = types.CellEmpty
		}
	}
	return rows, cols
}

// ClearCompletedLines clears completed rows and columns and returns how many
// were cleared. A full row and a full column count separately.
func (b *Board) ClearCompletedLines() int {
	rows, cols := b.ClearLines()
	return len(rows) + len(cols)
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.size; x++ {
		if b.cells[y][x] != types.CellFilled {
			return false
		}
	}
	return true
}

func (b *Board) columnFull(x int) bool {
	for y := 0; y < b.size; y++ {
		if b.cells[y][x] != types.CellFilled {
			return false
		}
	}
	return true
}

// Fits reports whether shape can be placed at any anchor on the board.
func (b *Board) Fits(shape shapes.Shape) bool {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.CanPlace(shape, x, y) {
				return true
			}
		}
	}
	return false
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for y := range b.cells {
		for _, cell := range b.cells[y] {
			if cell == types.CellFilled {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether no cell is filled.
func (b *Board) IsEmpty() bool {
	return b.FilledCount() == 0
}

// IsFull reports whether every cell is filled.
func (b *Board) IsFull() bool {
	return b.FilledCount() == b.size*b.size
}

// Cells returns a copy of the grid indexed [y][x].
func (b *Board) Cells() [][]types.CellState {
	out := make([][]types.CellState, b.size)
	for y := range b.cells {
		out[y] = append([]types.CellState(nil), b.cells[y]...)
	}
	return out
}

// Fill sets every listed cell to filled, ignoring coordinates off the board.
// It is meant for setting up positions, not for play.
func (b *Board) Fill(points ...[2]int) {
	for _, p := range points {
		if b.inBounds(p[0], p[1]) {
			b.cells[p[1]][p[0]] = types.CellFilled
		}
	}
}

func (b *Board) String() string {
	out := make([]byte, 0, b.size*(b.size+1))
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.cells[y][x] == types.CellFilled {
				out = append(out, '#')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
