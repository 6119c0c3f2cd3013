package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_Text(t *testing.T) {
	for _, s := range []SessionState{StatePlaying, StateGameOver} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var got SessionState
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}

	_, err := ParseSessionState("paused")
	assert.Error(t, err)
}

func TestSnapshot_JSON(t *testing.T) {
	snap := Snapshot{
		GridSize: 2,
		Grid:     [][]CellState{{CellEmpty, CellFilled}, {CellFilled, CellEmpty}},
		Score:    100,
		State:    StateGameOver,
	}
	b, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"grid":[[0,1],[1,0]]`)
	assert.Contains(t, string(b), `"state":"game_over"`)

	var got Snapshot
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, snap.Grid, got.Grid)
	assert.True(t, got.IsGameOver())
}

func TestCellState_UnmarshalJSON(t *testing.T) {
	var grid [][]CellState
	assert.Error(t, json.Unmarshal([]byte(`[[2]]`), &grid))
	assert.Error(t, json.Unmarshal([]byte(`[["x"]]`), &grid))
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{PiecePlacedEvent{}, "piece_placed"},
		{LinesClearedEvent{}, "lines_cleared"},
		{PieceSetRefilledEvent{}, "piece_set_refilled"},
		{GameOverEvent{}, "game_over"},
		{RestartEvent{}, "restart"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.EventName())
	}
}
