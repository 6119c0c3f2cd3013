package types

import (
	"fmt"
	"strconv"
)

// CellState is the content of a single board cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellFilled
)

func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFilled:
		return "filled"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes a cell as 0 or 1, so grids read as number matrices
// rather than base64 strings.
func (c CellState) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

func (c *CellState) UnmarshalJSON(b []byte) error {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("invalid cell state %s: %v", b, err)
	}
	switch CellState(n) {
	case CellEmpty, CellFilled:
		*c = CellState(n)
		return nil
	default:
		return fmt.Errorf("invalid cell state %d", n)
	}
}
