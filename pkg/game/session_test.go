package game

import (
	"bytes"
	"testing"

	mocks "github.com/cbodonnell/woodblock/mocks/github.com/cbodonnell/woodblock/pkg/queue"
	"github.com/cbodonnell/woodblock/pkg/game/constants"
	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0, log.LogLevelTrace)
}

func mustShape(t *testing.T, rows ...string) shapes.Shape {
	t.Helper()
	s, err := shapes.FromRows(rows...)
	require.NoError(t, err)
	return s
}

func newTestSession(t *testing.T, gridSize, pieceCount int, seq ...shapes.Shape) *Session {
	t.Helper()
	s, err := NewSession(NewSessionOptions{
		GridSize:         gridSize,
		ActivePieceCount: pieceCount,
		Source:           shapes.NewSequenceSource(seq...),
		Logger:           testLogger(),
	})
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(NewSessionOptions{Logger: testLogger()})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, constants.GridSize, snap.GridSize)
	assert.Len(t, snap.Grid, constants.GridSize)
	for _, row := range snap.Grid {
		assert.Len(t, row, constants.GridSize)
		for _, cell := range row {
			assert.Equal(t, types.CellEmpty, cell)
		}
	}
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, types.StatePlaying, snap.State)
	assert.Len(t, snap.ActivePieces, constants.ActivePieceCount)
	for _, p := range snap.ActivePieces {
		assert.False(t, p.Consumed)
	}

	_, err = NewSession(NewSessionOptions{GridSize: -1})
	assert.Error(t, err)
	_, err = NewSession(NewSessionOptions{ActivePieceCount: -1})
	assert.Error(t, err)
}

func TestSession_AttemptPlacementErrors(t *testing.T) {
	bar := mustShape(t, "#####")
	tests := []struct {
		name      string
		setup     func(t *testing.T, s *Session)
		piece     int
		x, y      int
		wantError error
	}{
		{
			name:      "piece index too large",
			piece:     3,
			wantError: ErrInvalidPiece,
		},
		{
			name:      "negative piece index",
			piece:     -1,
			wantError: ErrInvalidPiece,
		},
		{
			name: "consumed piece",
			setup: func(t *testing.T, s *Session) {
				_, err := s.AttemptPlacement(0, 0, 0)
				require.NoError(t, err)
			},
			piece:     0,
			y:         1,
			wantError: ErrInvalidPiece,
		},
		{
			name:      "out of bounds",
			piece:     0,
			x:         6,
			wantError: ErrIllegalPlacement,
		},
		{
			name:      "negative anchor",
			piece:     0,
			x:         -1,
			wantError: ErrIllegalPlacement,
		},
		{
			name: "overlap",
			setup: func(t *testing.T, s *Session) {
				_, err := s.AttemptPlacement(0, 0, 0)
				require.NoError(t, err)
			},
			piece:     1,
			x:         4,
			wantError: ErrIllegalPlacement,
		},
		{
			name: "game over",
			setup: func(t *testing.T, s *Session) {
				s.state = types.StateGameOver
			},
			piece:     0,
			wantError: ErrInvalidState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 10, 3, bar)
			if tt.setup != nil {
				tt.setup(t, s)
			}
			before := s.Snapshot()
			_, err := s.AttemptPlacement(tt.piece, tt.x, tt.y)
			assert.ErrorIs(t, err, tt.wantError)
			assert.Equal(t, before, s.Snapshot(), "rejected move must not change the session")
		})
	}
}

func TestSession_RowClear(t *testing.T) {
	bar := mustShape(t, "#####")
	s := newTestSession(t, 10, 3, bar)

	res, err := s.AttemptPlacement(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.LinesCleared)
	assert.Equal(t, 0, res.Snapshot.Score)
	assert.Equal(t, types.CellFilled, res.Snapshot.Grid[0][4])

	res, err = s.AttemptPlacement(1, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LinesCleared)
	assert.Equal(t, []int{0}, res.ClearedRows)
	assert.Empty(t, res.ClearedColumns)
	assert.Equal(t, 100, res.PointsAwarded)
	assert.Equal(t, 100, res.Snapshot.Score)
	for x := 0; x < 10; x++ {
		assert.Equal(t, types.CellEmpty, res.Snapshot.Grid[0][x])
	}
	assert.False(t, res.Refilled)
	assert.Equal(t, types.StatePlaying, res.Snapshot.State)
}

func TestSession_RowAndColumnCountSeparately(t *testing.T) {
	dot := mustShape(t, "#")
	s := newTestSession(t, 10, 3, dot)
	for i := 0; i < 10; i++ {
		if i != 7 {
			s.board.Fill([2]int{i, 3})
		}
		if i != 3 {
			s.board.Fill([2]int{7, i})
		}
	}

	res, err := s.AttemptPlacement(0, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, res.LinesCleared)
	assert.Equal(t, []int{3}, res.ClearedRows)
	assert.Equal(t, []int{7}, res.ClearedColumns)
	assert.Equal(t, 200, res.Snapshot.Score)
	for i := 0; i < 10; i++ {
		assert.Equal(t, types.CellEmpty, res.Snapshot.Grid[3][i])
		assert.Equal(t, types.CellEmpty, res.Snapshot.Grid[i][7])
	}
}

func TestSession_RefillAfterLastPiece(t *testing.T) {
	dot := mustShape(t, "#")
	s := newTestSession(t, 10, 3, dot)

	for i := 0; i < 2; i++ {
		res, err := s.AttemptPlacement(i, i, 0)
		require.NoError(t, err)
		assert.False(t, res.Refilled)
		assert.True(t, res.Snapshot.ActivePieces[i].Consumed)
	}
	res, err := s.AttemptPlacement(2, 2, 0)
	require.NoError(t, err)
	assert.True(t, res.Refilled)
	for _, p := range res.Snapshot.ActivePieces {
		assert.False(t, p.Consumed)
	}
	assert.Equal(t, uint32(4), res.Snapshot.ActivePieces[0].ID)
	assert.Equal(t, 3, res.Snapshot.Moves)
}

func TestSession_GameOverAfterMove(t *testing.T) {
	square := mustShape(t, "##", "##")
	events := queue.NewInMemoryQueue(32)
	s, err := NewSession(NewSessionOptions{
		GridSize:         3,
		ActivePieceCount: 3,
		Source:           shapes.NewSequenceSource(square),
		EventQueue:       events,
		Logger:           testLogger(),
	})
	require.NoError(t, err)

	res, err := s.AttemptPlacement(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, types.StateGameOver, res.Snapshot.State)
	assert.True(t, s.IsGameOver())

	_, err = s.AttemptPlacement(1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, s.CanPlace(1, 1, 1))

	items, err := events.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, types.PiecePlacedEvent{PieceID: 1, X: 0, Y: 0}, items[0])
	assert.Equal(t, types.GameOverEvent{Score: 0}, items[1])
}

func TestSession_GameOverUsesRefilledSet(t *testing.T) {
	square := mustShape(t, "##", "##")
	dot := mustShape(t, "#")
	s := newTestSession(t, 3, 1, square, dot)

	res, err := s.AttemptPlacement(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Refilled)
	assert.Equal(t, types.StatePlaying, res.Snapshot.State)
	assert.True(t, res.Snapshot.ActivePieces[0].Shape.Equal(dot))
}

// A single-hole board cannot be reached through moves, since every almost-full
// line clears, so the game-over search is checked on the board directly.
func TestSession_SingleHoleIsGameOverForLargePieces(t *testing.T) {
	s := newTestSession(t, 10, 3, mustShape(t, "##"), mustShape(t, "#", "#"), mustShape(t, "##", "##"))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x != 0 || y != 0 {
				s.board.Fill([2]int{x, y})
			}
		}
	}
	assert.True(t, s.noPieceFits())

	dots := newTestSession(t, 10, 3, mustShape(t, "#"))
	dots.board = s.board
	assert.False(t, dots.noPieceFits())
}

func TestSession_FullBoardIsAlwaysGameOver(t *testing.T) {
	for _, shape := range shapes.All() {
		s := newTestSession(t, 10, 3, shape)
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				s.board.Fill([2]int{x, y})
			}
		}
		assert.True(t, s.noPieceFits(), "shape %s", shape)
	}
}

func TestSession_EmptyBoardIsNeverGameOver(t *testing.T) {
	for _, shape := range shapes.All() {
		s := newTestSession(t, 10, 3, shape)
		assert.False(t, s.noPieceFits(), "shape %s", shape)
	}
}

func TestSession_ScoreIsAdditive(t *testing.T) {
	s, err := NewSession(NewSessionOptions{
		Source: shapes.NewRandomSource(1),
		Logger: testLogger(),
	})
	require.NoError(t, err)

	totalLines := 0
	lastScore := 0
	for moves := 0; moves < 1000 && !s.IsGameOver(); moves++ {
		piece, x, y, ok := firstLegalMove(s)
		require.True(t, ok, "a playing session must have a legal move")

		res, err := s.AttemptPlacement(piece, x, y)
		require.NoError(t, err)
		totalLines += res.LinesCleared
		assert.Equal(t, constants.PointsPerLine*totalLines, res.Snapshot.Score)
		assert.GreaterOrEqual(t, res.Snapshot.Score, lastScore)
		assert.Equal(t, totalLines, res.Snapshot.LinesCleared)
		lastScore = res.Snapshot.Score

		rows, cols := s.board.CompletedLines()
		assert.Empty(t, rows)
		assert.Empty(t, cols)
	}
	if s.IsGameOver() {
		_, _, _, ok := firstLegalMove(s)
		assert.False(t, ok)
	}
}

func firstLegalMove(s *Session) (piece, x, y int, ok bool) {
	snap := s.Snapshot()
	for i, p := range snap.ActivePieces {
		if p.Consumed {
			continue
		}
		for y := 0; y < snap.GridSize; y++ {
			for x := 0; x < snap.GridSize; x++ {
				if s.CanPlace(i, x, y) {
					return i, x, y, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

func TestSession_Restart(t *testing.T) {
	square := mustShape(t, "##", "##")
	events := queue.NewInMemoryQueue(32)
	s, err := NewSession(NewSessionOptions{
		GridSize:   3,
		Source:     shapes.NewSequenceSource(square),
		EventQueue: events,
		Logger:     testLogger(),
	})
	require.NoError(t, err)
	s.score = 300
	_, err = s.AttemptPlacement(0, 0, 0)
	require.NoError(t, err)
	require.True(t, s.IsGameOver())
	oldBoard := s.board
	events.ClearQueue()

	snap, err := s.Restart()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, types.StatePlaying, snap.State)
	assert.Equal(t, 0, snap.Moves)
	assert.NotSame(t, oldBoard, s.board)
	for _, row := range snap.Grid {
		for _, cell := range row {
			assert.Equal(t, types.CellEmpty, cell)
		}
	}
	for _, p := range snap.ActivePieces {
		assert.False(t, p.Consumed)
	}

	items, err := events.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{types.RestartEvent{}}, items)

	_, err = s.AttemptPlacement(0, 0, 0)
	assert.NoError(t, err)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := newTestSession(t, 10, 3, mustShape(t, "#"))
	snap := s.Snapshot()
	snap.Grid[0][0] = types.CellFilled
	snap.ActivePieces[0].Consumed = true

	fresh := s.Snapshot()
	assert.Equal(t, types.CellEmpty, fresh.Grid[0][0])
	assert.False(t, fresh.ActivePieces[0].Consumed)
	assert.True(t, s.CanPlace(0, 0, 0))
}

func TestSession_LinesClearedEvent(t *testing.T) {
	bar := mustShape(t, "#####")
	events := queue.NewInMemoryQueue(32)
	s, err := NewSession(NewSessionOptions{
		ActivePieceCount: 2,
		Source:           shapes.NewSequenceSource(bar),
		EventQueue:       events,
		Logger:           testLogger(),
	})
	require.NoError(t, err)

	_, err = s.AttemptPlacement(0, 0, 9)
	require.NoError(t, err)
	_, err = s.AttemptPlacement(1, 5, 9)
	require.NoError(t, err)

	items, err := events.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		types.PiecePlacedEvent{PieceID: 1, X: 0, Y: 9},
		types.PiecePlacedEvent{PieceID: 2, X: 5, Y: 9},
		types.PieceSetRefilledEvent{PieceIDs: []uint32{3, 4}},
		types.LinesClearedEvent{Rows: []int{9}, Columns: nil, Points: 100},
	}, items)
}

func TestSession_FullEventQueueDoesNotFailMove(t *testing.T) {
	mockQueue := mocks.NewQueue(t)
	mockQueue.EXPECT().Enqueue(types.PiecePlacedEvent{PieceID: 1, X: 0, Y: 0}).Return(queue.ErrQueueFull).Once()

	s, err := NewSession(NewSessionOptions{
		Source:     shapes.NewSequenceSource(mustShape(t, "#")),
		EventQueue: mockQueue,
		Logger:     testLogger(),
	})
	require.NoError(t, err)
	res, err := s.AttemptPlacement(0, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Snapshot.Moves)
}

func TestSession_MarkScoreSubmitted(t *testing.T) {
	s := newTestSession(t, 3, 3, mustShape(t, "##", "##"))
	assert.ErrorIs(t, s.MarkScoreSubmitted(), ErrInvalidState)
	assert.False(t, s.ScoreSubmitted())

	_, err := s.AttemptPlacement(0, 0, 0)
	require.NoError(t, err)
	require.True(t, s.IsGameOver())

	require.NoError(t, s.MarkScoreSubmitted())
	assert.True(t, s.ScoreSubmitted())
	assert.ErrorIs(t, s.MarkScoreSubmitted(), ErrScoreSubmitted)

	_, err = s.Restart()
	require.NoError(t, err)
	assert.False(t, s.ScoreSubmitted())
}
