package repositories

import (
	"context"
	"sync"

	gametypes "github.com/cbodonnell/woodblock/pkg/game/types"
)

// InMemoryRepository keeps the leaderboard for the lifetime of the process.
type InMemoryRepository struct {
	lock    sync.RWMutex
	entries []gametypes.LeaderboardEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) LoadLeaderboard(ctx context.Context) ([]gametypes.LeaderboardEntry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]gametypes.LeaderboardEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *InMemoryRepository) SaveLeaderboard(ctx context.Context, entries []gametypes.LeaderboardEntry) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = make([]gametypes.LeaderboardEntry, len(entries))
	copy(r.entries, entries)
	return nil
}
