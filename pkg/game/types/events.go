package types

// Event is published by a session after a successful move or restart.
// Collaborators such as audio or animation layers consume them.
type Event interface {
	EventName() string
}

// PiecePlacedEvent is published after a piece is placed on the board.
type PiecePlacedEvent struct {
	PieceID uint32 `json:"pieceId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

func (PiecePlacedEvent) EventName() string { return "piece_placed" }

// LinesClearedEvent is published when a move completes rows or columns.
type LinesClearedEvent struct {
	Rows    []int `json:"rows"`
	Columns []int `json:"columns"`
	Points  int   `json:"points"`
}

func (LinesClearedEvent) EventName() string { return "lines_cleared" }

// PieceSetRefilledEvent is published when a fresh set of pieces is drawn.
type PieceSetRefilledEvent struct {
	PieceIDs []uint32 `json:"pieceIds"`
}

func (PieceSetRefilledEvent) EventName() string { return "piece_set_refilled" }

// GameOverEvent is published when no offered piece fits on the board.
type GameOverEvent struct {
	Score int `json:"score"`
}

func (GameOverEvent) EventName() string { return "game_over" }

// RestartEvent is published when a session is restarted.
type RestartEvent struct{}

func (RestartEvent) EventName() string { return "restart" }
