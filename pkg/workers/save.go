package workers

import (
	"context"
	"fmt"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/repositories"
)

// SaveScoreWorker is the single writer of the leaderboard.
type SaveScoreWorker struct {
	repository    repositories.Repository
	saveScoreChan <-chan SaveScoreRequest
}

type NewSaveScoreWorkerOptions struct {
	Repository    repositories.Repository
	SaveScoreChan <-chan SaveScoreRequest
}

type SaveScoreRequest struct {
	Entry types.LeaderboardEntry
	// Result receives the outcome when not nil. It must be buffered.
	Result chan<- SaveScoreResult
}

type SaveScoreResult struct {
	// Saved is false when the entry no longer qualifies.
	Saved   bool
	Entries []types.LeaderboardEntry
	Err     error
}

// NewSaveScoreWorker creates a new SaveScoreWorker.
// The worker processes score submissions one at a time so that concurrent
// submissions cannot overwrite each other's leaderboard updates.
func NewSaveScoreWorker(opts NewSaveScoreWorkerOptions) *SaveScoreWorker {
	return &SaveScoreWorker{
		repository:    opts.Repository,
		saveScoreChan: opts.SaveScoreChan,
	}
}

func (w *SaveScoreWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.saveScoreChan:
			if !ok {
				return
			}
			result := w.saveScore(ctx, req.Entry)
			if result.Err != nil {
				log.Error("Failed to save score %d for %s: %v", req.Entry.Score, req.Entry.Name, result.Err)
			}
			if req.Result != nil {
				req.Result <- result
			}
		}
	}
}

func (w *SaveScoreWorker) saveScore(ctx context.Context, entry types.LeaderboardEntry) SaveScoreResult {
	entries, err := w.repository.LoadLeaderboard(ctx)
	if err != nil {
		return SaveScoreResult{Err: fmt.Errorf("failed to load leaderboard: %v", err)}
	}
	if !game.QualifiesForLeaderboard(entries, entry.Score) {
		log.Debug("Score %d for %s no longer qualifies", entry.Score, entry.Name)
		return SaveScoreResult{Entries: entries}
	}

	updated := game.InsertLeaderboardEntry(entries, entry)
	if err := w.repository.SaveLeaderboard(ctx, updated); err != nil {
		return SaveScoreResult{Entries: entries, Err: fmt.Errorf("failed to save leaderboard: %v", err)}
	}
	log.Info("Saved score %d for %s", entry.Score, entry.Name)
	return SaveScoreResult{Saved: true, Entries: updated}
}
