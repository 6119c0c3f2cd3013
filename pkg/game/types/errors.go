package types

import "errors"

var (
	// ErrInvalidState is returned when a move is attempted after game over.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidPiece is returned for an out-of-range or consumed piece.
	ErrInvalidPiece = errors.New("invalid piece")
	// ErrIllegalPlacement is returned when a shape does not fit at an anchor.
	ErrIllegalPlacement = errors.New("illegal placement")
	// ErrScoreSubmitted is returned when a finished session's score was already submitted.
	ErrScoreSubmitted = errors.New("score already submitted")
)
