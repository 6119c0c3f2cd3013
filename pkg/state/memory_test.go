package state

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *InMemorySessionManager {
	t.Helper()
	return NewInMemorySessionManager(NewInMemorySessionManagerOptions{
		Seed:   42,
		Logger: log.New(&bytes.Buffer{}, "", 0, log.LogLevelTrace),
	})
}

func TestInMemorySessionManager_CreateAndWith(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	id, snap, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, types.StatePlaying, snap.State)
	assert.Equal(t, 1, m.Len())

	var got types.Snapshot
	err = m.With(ctx, id, func(s *game.Session) error {
		got = s.Snapshot()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	sentinel := errors.New("boom")
	err = m.With(ctx, id, func(s *game.Session) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestInMemorySessionManager_SeededSessionsRepeat(t *testing.T) {
	ctx := context.Background()
	_, a, err := newTestManager(t).Create(ctx)
	require.NoError(t, err)
	_, b, err := newTestManager(t).Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ActivePieces, b.ActivePieces)
}

func TestInMemorySessionManager_UnknownSession(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id := uuid.New()

	err := m.With(ctx, id, func(s *game.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Events(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(ctx, id), ErrSessionNotFound)
}

func TestInMemorySessionManager_Events(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	err = m.With(ctx, id, func(s *game.Session) error {
		_, err := s.Restart()
		return err
	})
	require.NoError(t, err)

	events, err := m.Events(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []types.Event{types.RestartEvent{}}, events)

	events, err = m.Events(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInMemorySessionManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, id))
	assert.Equal(t, 0, m.Len())
	err = m.With(ctx, id, func(s *game.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInMemorySessionManager_Prune(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale, _, err := m.Create(ctx)
	require.NoError(t, err)
	now = now.Add(10 * time.Minute)
	fresh, _, err := m.Create(ctx)
	require.NoError(t, err)
	now = now.Add(10 * time.Minute)

	assert.Equal(t, 1, m.Prune(ctx, 15*time.Minute))
	assert.Equal(t, 1, m.Len())
	assert.ErrorIs(t, m.With(ctx, stale, func(s *game.Session) error { return nil }), ErrSessionNotFound)
	assert.NoError(t, m.With(ctx, fresh, func(s *game.Session) error { return nil }))
}

func TestInMemorySessionManager_ConcurrentPlacements(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(ctx, id, func(s *game.Session) error {
				snap := s.Snapshot()
				for p, piece := range snap.ActivePieces {
					if piece.Consumed {
						continue
					}
					for y := 0; y < snap.GridSize; y++ {
						for x := 0; x < snap.GridSize; x++ {
							if s.CanPlace(p, x, y) {
								_, err := s.AttemptPlacement(p, x, y)
								return err
							}
						}
					}
				}
				return nil
			})
		}()
	}
	wg.Wait()

	err = m.With(ctx, id, func(s *game.Session) error {
		snap := s.Snapshot()
		assert.LessOrEqual(t, snap.Moves, 8)
		return nil
	})
	require.NoError(t, err)
}

func TestInMemorySessionManager_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newTestManager(t)
	_, _, err := m.Create(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemorySessionManager_WithAfterRemovalWhileWaiting(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	entry, err := m.get(id)
	require.NoError(t, err)
	entry.lock.Lock()

	called := false
	done := make(chan error, 1)
	go func() {
		done <- m.With(ctx, id, func(s *game.Session) error {
			called = true
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, m.Delete(ctx, id))
	entry.lock.Unlock()

	assert.ErrorIs(t, <-done, ErrSessionNotFound)
	assert.False(t, called)
}
