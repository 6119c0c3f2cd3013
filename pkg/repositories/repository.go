package repositories

import (
	"context"

	gametypes "github.com/cbodonnell/woodblock/pkg/game/types"
)

// Repository stores the leaderboard.
// Implementations must be thread-safe.
type Repository interface {
	Close(ctx context.Context) error
	// LoadLeaderboard returns the stored entries ordered by score, highest first.
	LoadLeaderboard(ctx context.Context) ([]gametypes.LeaderboardEntry, error)
	// SaveLeaderboard replaces the stored entries with entries, keeping their order.
	SaveLeaderboard(ctx context.Context, entries []gametypes.LeaderboardEntry) error
}
