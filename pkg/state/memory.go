package state

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/game/constants"
	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/queue"
	"github.com/google/uuid"
)

type sessionEntry struct {
	lock       sync.Mutex
	session    *game.Session
	events     *queue.InMemoryQueue
	lastAccess time.Time
}

// InMemorySessionManager keeps sessions in a map keyed by uuid.
type InMemorySessionManager struct {
	lock     sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry

	gridSize       int
	pieceCount     int
	eventQueueSize int
	newSource      func(seed int64) shapes.Source
	logger         *log.Logger

	seedLock sync.Mutex
	seeds    *rand.Rand

	now func() time.Time
}

// NewInMemorySessionManagerOptions contains options for creating a new InMemorySessionManager.
type NewInMemorySessionManagerOptions struct {
	// GridSize and ActivePieceCount are passed to every new session.
	GridSize         int
	ActivePieceCount int
	// Seed seeds the shape sources of new sessions. Zero means time based.
	Seed int64
	// EventQueueSize bounds each session's event queue. Zero means constants.EventQueueSize.
	EventQueueSize int
	// NewSource builds the shape source of each new session. Nil means shapes.NewRandomSource.
	NewSource func(seed int64) shapes.Source
	Logger    *log.Logger
}

func NewInMemorySessionManager(opts NewInMemorySessionManagerOptions) *InMemorySessionManager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	size := opts.EventQueueSize
	if size == 0 {
		size = constants.EventQueueSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	newSource := opts.NewSource
	if newSource == nil {
		newSource = func(seed int64) shapes.Source {
			return shapes.NewRandomSource(seed)
		}
	}
	return &InMemorySessionManager{
		sessions:       make(map[uuid.UUID]*sessionEntry),
		gridSize:       opts.GridSize,
		pieceCount:     opts.ActivePieceCount,
		eventQueueSize: size,
		newSource:      newSource,
		logger:         logger,
		seeds:          rand.New(rand.NewSource(seed)),
		now:            time.Now,
	}
}

func (m *InMemorySessionManager) nextSeed() int64 {
	m.seedLock.Lock()
	defer m.seedLock.Unlock()
	return m.seeds.Int63()
}

func (m *InMemorySessionManager) Create(ctx context.Context) (uuid.UUID, types.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, types.Snapshot{}, err
	}
	id := uuid.New()
	events := queue.NewInMemoryQueue(m.eventQueueSize)
	session, err := game.NewSession(game.NewSessionOptions{
		GridSize:         m.gridSize,
		ActivePieceCount: m.pieceCount,
		Source:           m.newSource(m.nextSeed()),
		EventQueue:       events,
		Logger:           m.logger.With(log.Fields{"session": id.String()}),
	})
	if err != nil {
		return uuid.Nil, types.Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	m.lock.Lock()
	m.sessions[id] = &sessionEntry{
		session:    session,
		events:     events,
		lastAccess: m.now(),
	}
	m.lock.Unlock()

	m.logger.Debug("Created session %s", id)
	return id, session.Snapshot(), nil
}

func (m *InMemorySessionManager) get(id uuid.UUID) (*sessionEntry, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return entry, nil
}

func (m *InMemorySessionManager) With(ctx context.Context, id uuid.UUID, fn func(s *game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry, err := m.get(id)
	if err != nil {
		return err
	}
	entry.lock.Lock()
	defer entry.lock.Unlock()
	// Prune or Delete may have removed the entry while we waited for its lock.
	if !m.isLive(id, entry) {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	entry.lastAccess = m.now()
	return fn(entry.session)
}

func (m *InMemorySessionManager) isLive(id uuid.UUID, entry *sessionEntry) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.sessions[id] == entry
}

func (m *InMemorySessionManager) Events(ctx context.Context, id uuid.UUID) ([]types.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := m.get(id)
	if err != nil {
		return nil, err
	}
	items, err := entry.events.ReadAllMessages()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	events := make([]types.Event, 0, len(items))
	for _, item := range items {
		event, ok := item.(types.Event)
		if !ok {
			m.logger.Warn("Unexpected item of type %T in event queue of session %s", item, id)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (m *InMemorySessionManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	delete(m.sessions, id)
	m.logger.Debug("Deleted session %s", id)
	return nil
}

func (m *InMemorySessionManager) Prune(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.lock.Lock()
	defer m.lock.Unlock()
	pruned := 0
	for id, entry := range m.sessions {
		if ctx.Err() != nil {
			break
		}
		// Sessions in use are never idle.
		if !entry.lock.TryLock() {
			continue
		}
		if entry.lastAccess.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
		entry.lock.Unlock()
	}
	if pruned > 0 {
		m.logger.Info("Pruned %d idle sessions", pruned)
	}
	return pruned
}

func (m *InMemorySessionManager) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}
