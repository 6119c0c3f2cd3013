package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/woodblock/pkg/state"
)

type PruneSessionsWorker struct {
	sessionManager state.SessionManager
	interval       time.Duration
	maxIdle        time.Duration
}

type NewPruneSessionsWorkerOptions struct {
	SessionManager state.SessionManager
	Interval       time.Duration
	MaxIdle        time.Duration
}

// NewPruneSessionsWorker creates a new PruneSessionsWorker.
// The worker periodically discards sessions that have been idle for longer than MaxIdle.
func NewPruneSessionsWorker(opts NewPruneSessionsWorkerOptions) *PruneSessionsWorker {
	return &PruneSessionsWorker{
		sessionManager: opts.SessionManager,
		interval:       opts.Interval,
		maxIdle:        opts.MaxIdle,
	}
}

func (w *PruneSessionsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sessionManager.Prune(ctx, w.maxIdle)
		}
	}
}
