package state

import (
	"context"
	"errors"
	"time"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or evicted session id.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager holds the live game sessions.
// Implementations must be thread-safe.
type SessionManager interface {
	// Create starts a new session and returns its id and initial snapshot.
	Create(ctx context.Context) (uuid.UUID, types.Snapshot, error)
	// With runs fn with exclusive access to the session.
	With(ctx context.Context, id uuid.UUID, fn func(s *game.Session) error) error
	// Events removes and returns the events the session published since the last call.
	Events(ctx context.Context, id uuid.UUID) ([]types.Event, error)
	// Delete discards the session.
	Delete(ctx context.Context, id uuid.UUID) error
	// Prune discards sessions idle for longer than maxIdle and returns how many were removed.
	Prune(ctx context.Context, maxIdle time.Duration) int
	// Len returns the number of live sessions.
	Len() int
}
