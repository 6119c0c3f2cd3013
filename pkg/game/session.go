package game

import (
	"fmt"
	"time"

	"github.com/cbodonnell/woodblock/pkg/game/board"
	"github.com/cbodonnell/woodblock/pkg/game/constants"
	"github.com/cbodonnell/woodblock/pkg/game/pieces"
	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/queue"
)

var (
	ErrInvalidState     = types.ErrInvalidState
	ErrInvalidPiece     = types.ErrInvalidPiece
	ErrIllegalPlacement = types.ErrIllegalPlacement
	ErrScoreSubmitted   = types.ErrScoreSubmitted
)

// Session is a single play of the puzzle. It owns its board, its piece set
// and its score; callers only ever see snapshots.
//
// A Session is not safe for concurrent use. Callers must serialize calls.
type Session struct {
	gridSize   int
	pieceCount int
	source     shapes.Source
	eventQueue queue.Queue
	logger     *log.Logger

	board        *board.Board
	pieces       *pieces.Set
	score        int
	state        types.SessionState
	moves        int
	linesCleared int

	scoreSubmitted bool
}

// NewSessionOptions contains options for creating a new Session.
type NewSessionOptions struct {
	// GridSize is the board width and height. Zero means constants.GridSize.
	GridSize int
	// ActivePieceCount is the number of offered pieces. Zero means constants.ActivePieceCount.
	ActivePieceCount int
	// Source supplies shapes. Nil means a time-seeded random source.
	Source shapes.Source
	// EventQueue receives types.Event values after each move. Optional.
	EventQueue queue.Queue
	// Logger is used for session logs. Nil means the default logger.
	Logger *log.Logger
}

// NewSession creates a session in the Playing state with an empty board
// and a freshly drawn piece set.
func NewSession(opts NewSessionOptions) (*Session, error) {
	if opts.GridSize < 0 {
		return nil, fmt.Errorf("grid size must not be negative, got %d", opts.GridSize)
	}
	if opts.ActivePieceCount < 0 {
		return nil, fmt.Errorf("active piece count must not be negative, got %d", opts.ActivePieceCount)
	}
	s := &Session{
		gridSize:   opts.GridSize,
		pieceCount: opts.ActivePieceCount,
		source:     opts.Source,
		eventQueue: opts.EventQueue,
		logger:     opts.Logger,
	}
	if s.gridSize == 0 {
		s.gridSize = constants.GridSize
	}
	if s.pieceCount == 0 {
		s.pieceCount = constants.ActivePieceCount
	}
	if s.source == nil {
		s.source = shapes.NewRandomSource(time.Now().UnixNano())
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// reset discards the board and piece set and builds new ones.
func (s *Session) reset() error {
	b, err := board.New(s.gridSize)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	set, err := pieces.New(s.pieceCount, s.source)
	if err != nil {
		return fmt.Errorf("failed to create piece set: %w", err)
	}
	s.board = b
	s.pieces = set
	s.score = 0
	s.state = types.StatePlaying
	s.moves = 0
	s.linesCleared = 0
	s.scoreSubmitted = false
	return nil
}

// AttemptPlacement places the piece in slot pieceIndex with its top-left
// corner at (anchorX, anchorY).
//
// It fails with ErrInvalidState after game over, ErrInvalidPiece for a bad
// or consumed slot, and ErrIllegalPlacement when the shape does not fit.
// A failed attempt leaves the session unchanged.
func (s *Session) AttemptPlacement(pieceIndex, anchorX, anchorY int) (types.MoveResult, error) {
	if s.state == types.StateGameOver {
		return types.MoveResult{}, fmt.Errorf("session is over: %w", ErrInvalidState)
	}
	piece, err := s.pieces.Available(pieceIndex)
	if err != nil {
		return types.MoveResult{}, err
	}
	if !s.board.CanPlace(piece.Shape, anchorX, anchorY) {
		return types.MoveResult{}, fmt.Errorf("piece %d does not fit at (%d, %d): %w", pieceIndex, anchorX, anchorY, ErrIllegalPlacement)
	}

	if err := s.board.Place(piece.Shape, anchorX, anchorY); err != nil {
		panic(fmt.Sprintf("board rejected a validated placement: %v", err))
	}
	if err := s.pieces.Consume(pieceIndex); err != nil {
		panic(fmt.Sprintf("piece set rejected an available piece: %v", err))
	}
	s.moves++
	s.publish(types.PiecePlacedEvent{PieceID: piece.ID, X: anchorX, Y: anchorY})

	result := types.MoveResult{}
	if s.pieces.AllConsumed() {
		s.pieces.RefillAll()
		result.Refilled = true
		s.publish(types.PieceSetRefilledEvent{PieceIDs: s.pieces.IDs()})
	}

	rows, cols := s.board.ClearLines()
	result.ClearedRows = rows
	result.ClearedColumns = cols
	result.LinesCleared = len(rows) + len(cols)
	result.PointsAwarded = result.LinesCleared * constants.PointsPerLine
	if result.LinesCleared > 0 {
		s.score += result.PointsAwarded
		s.linesCleared += result.LinesCleared
		s.publish(types.LinesClearedEvent{Rows: rows, Columns: cols, Points: result.PointsAwarded})
	}

	s.logger.Debug("Placed piece %d (%s) at (%d, %d), cleared %d lines, score %d", piece.ID, piece.Shape, anchorX, anchorY, result.LinesCleared, s.score)

	if s.noPieceFits() {
		s.state = types.StateGameOver
		s.logger.Info("Game over with score %d after %d moves", s.score, s.moves)
		s.publish(types.GameOverEvent{Score: s.score})
	}

	result.Snapshot = s.Snapshot()
	return result, nil
}

// noPieceFits searches every unconsumed piece against every anchor and
// reports whether none of them can be placed.
func (s *Session) noPieceFits() bool {
	for _, p := range s.pieces.Unconsumed() {
		if s.board.Fits(p.Shape) {
			return false
		}
	}
	return true
}

// Restart discards the board, the piece set and the score and starts over
// in the Playing state.
func (s *Session) Restart() (types.Snapshot, error) {
	if err := s.reset(); err != nil {
		return types.Snapshot{}, err
	}
	s.logger.Debug("Session restarted")
	s.publish(types.RestartEvent{})
	return s.Snapshot(), nil
}

// Snapshot returns a copy of the session's visible state.
func (s *Session) Snapshot() types.Snapshot {
	return types.Snapshot{
		GridSize:     s.gridSize,
		Grid:         s.board.Cells(),
		Score:        s.score,
		State:        s.state,
		ActivePieces: s.pieces.Views(),
		Moves:        s.moves,
		LinesCleared: s.linesCleared,
	}
}

// CanPlace reports whether the piece in slot pieceIndex would fit at the
// given anchor. It never changes the session; renderers use it for previews.
func (s *Session) CanPlace(pieceIndex, anchorX, anchorY int) bool {
	if s.state == types.StateGameOver {
		return false
	}
	piece, err := s.pieces.Available(pieceIndex)
	if err != nil {
		return false
	}
	return s.board.CanPlace(piece.Shape, anchorX, anchorY)
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// State returns the current session state.
func (s *Session) State() types.SessionState {
	return s.state
}

// ScoreSubmitted reports whether the final score was already submitted to
// the leaderboard.
func (s *Session) ScoreSubmitted() bool {
	return s.scoreSubmitted
}

// MarkScoreSubmitted records that the final score went to the leaderboard.
// A game allows one submission; Restart allows the next one.
func (s *Session) MarkScoreSubmitted() error {
	if s.state != types.StateGameOver {
		return fmt.Errorf("session is still playing: %w", ErrInvalidState)
	}
	if s.scoreSubmitted {
		return ErrScoreSubmitted
	}
	s.scoreSubmitted = true
	return nil
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	return s.state == types.StateGameOver
}

func (s *Session) publish(event types.Event) {
	if s.eventQueue == nil {
		return
	}
	if err := s.eventQueue.Enqueue(event); err != nil {
		s.logger.Warn("Dropped %s event: %v", event.EventName(), err)
	}
}
