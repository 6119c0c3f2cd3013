package repositories

import (
	"context"
	"path/filepath"
	"testing"

	gametypes "github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteMigrations = "../../migrations/sqlite"

func newTestSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "woodblock.db")
	repo, err := NewSQLiteRepository(ctx, path, sqliteMigrations)
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close(ctx)
	})
	return repo
}

func TestSQLiteRepository_Leaderboard(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepository(t)

	entries, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	want := []gametypes.LeaderboardEntry{
		{Name: "alice", Score: 900, CreatedAt: 3},
		{Name: "bob", Score: 900, CreatedAt: 1},
		{Name: "carol", Score: 100, CreatedAt: 2},
	}
	require.NoError(t, repo.SaveLeaderboard(ctx, want))
	got, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.SaveLeaderboard(ctx, want[:1]))
	got, err = repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestSQLiteRepository_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "woodblock.db")
	entries := []gametypes.LeaderboardEntry{{Name: "dave", Score: 400, CreatedAt: 7}}

	repo, err := NewSQLiteRepository(ctx, path, sqliteMigrations)
	require.NoError(t, err)
	require.NoError(t, repo.SaveLeaderboard(ctx, entries))
	require.NoError(t, repo.Close(ctx))

	repo, err = NewSQLiteRepository(ctx, path, sqliteMigrations)
	require.NoError(t, err)
	defer repo.Close(ctx)
	got, err := repo.LoadLeaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestNewSQLiteRepository_MissingMigrations(t *testing.T) {
	_, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "x.db"), "does-not-exist")
	assert.Error(t, err)
}
