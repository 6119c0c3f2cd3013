package types

import "github.com/cbodonnell/woodblock/pkg/game/shapes"

// PieceView is a read-only view of an offered piece.
type PieceView struct {
	ID       uint32       `json:"id"`
	Shape    shapes.Shape `json:"shape"`
	Consumed bool         `json:"consumed"`
}

// Snapshot is an immutable view of a session. Its slices are never shared
// with the session that produced it.
type Snapshot struct {
	GridSize     int           `json:"gridSize"`
	Grid         [][]CellState `json:"grid"`
	Score        int           `json:"score"`
	State        SessionState  `json:"state"`
	ActivePieces []PieceView   `json:"activePieces"`
	// Moves is the number of successful placements since the last restart
	Moves int `json:"moves"`
	// LinesCleared is the total number of rows and columns cleared since the last restart
	LinesCleared int `json:"linesCleared"`
}

// IsGameOver reports whether the snapshot was taken after game over.
func (s Snapshot) IsGameOver() bool {
	return s.State == StateGameOver
}

// MoveResult describes the outcome of a successful placement.
type MoveResult struct {
	Snapshot       Snapshot `json:"snapshot"`
	LinesCleared   int      `json:"linesCleared"`
	ClearedRows    []int    `json:"clearedRows,omitempty"`
	ClearedColumns []int    `json:"clearedColumns,omitempty"`
	PointsAwarded  int      `json:"pointsAwarded"`
	// Refilled is set when the move consumed the last piece and a new set was drawn
	Refilled bool `json:"refilled"`
}
