package repositories

import (
	"context"
	"testing"

	gametypes "github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_Leaderboard(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	entries, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	saved := []gametypes.LeaderboardEntry{{Name: "erin", Score: 300}}
	require.NoError(t, repo.SaveLeaderboard(ctx, saved))
	saved[0].Score = 0

	got, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gametypes.LeaderboardEntry{{Name: "erin", Score: 300}}, got)

	got[0].Name = "mallory"
	again, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "erin", again[0].Name)
}

