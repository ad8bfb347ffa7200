package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/internal/logging"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// live is a replayed session kept in memory.
type live struct {
	ide     *virtualide.IDE
	actions []domain.Action
}

// Manager keeps live IDE sessions. A session is persisted as its action log
// (a domain.Recording without frames) and rebuilt by replaying it.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store  ports.RecordingStore
	newIDE func() *virtualide.IDE

	mu    sync.Mutex            // Global lock for the maps
	locks map[string]*lockEntry // Map of active locks
	cache map[string]*live

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = locker
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDEFactory sets how session IDEs are created. The default is virtualide.NewDefault.
func WithIDEFactory(fn func() *virtualide.IDE) Option {
	return func(m *Manager) {
		m.newIDE = fn
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.RecordingStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		newIDE:  func() *virtualide.IDE { return virtualide.NewDefault() },
		locks:   make(map[string]*lockEntry),
		cache:   make(map[string]*live),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

func (m *Manager) cached(id string) *live {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache[id]
}

func (m *Manager) remember(id string, l *live) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l == nil {
		delete(m.cache, id)
		return
	}
	m.cache[id] = l
}

// Result describes one Apply call.
type Result struct {
	Before  domain.CourseSnapshot
	After   domain.CourseSnapshot
	Applied int // number of actions that were applied
}

// Start creates the session if it does not exist and returns its snapshot.
func (m *Manager) Start(ctx context.Context, id string) (domain.CourseSnapshot, error) {
	var snap domain.CourseSnapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.load(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			l = &live{ide: m.newIDE()}
			if err := m.persist(ctx, id, l); err != nil {
				return fmt.Errorf("failed to initialize session: %w", err)
			}
		} else if err != nil {
			return err
		}
		snap = l.ide.Snapshot()
		return nil
	})
	return snap, err
}

// Apply applies actions to the session in order. Actions before a failing one
// stay applied and are persisted; the error is a *domain.ActionError.
func (m *Manager) Apply(ctx context.Context, id string, actions []domain.Action) (Result, error) {
	var res Result
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.load(ctx, id)
		if err != nil {
			return err
		}

		res.Before = l.ide.Snapshot()
		applyErr := l.ide.ApplyActions(ctx, actions)
		res.Applied = len(actions)
		var actionErr *domain.ActionError
		if errors.As(applyErr, &actionErr) {
			res.Applied = actionErr.Index
		}
		res.After = l.ide.Snapshot()

		if res.Applied > 0 {
			l.actions = append(l.actions, actions[:res.Applied]...)
			if err := m.persist(ctx, id, l); err != nil {
				// The IDE is ahead of the store now; drop it so the next call replays.
				m.remember(id, nil)
				return err
			}
		}
		return applyErr
	})
	return res, err
}

// Snapshot returns the current state of the session.
func (m *Manager) Snapshot(ctx context.Context, id string) (domain.CourseSnapshot, error) {
	var snap domain.CourseSnapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.load(ctx, id)
		if err != nil {
			return err
		}
		snap = l.ide.Snapshot()
		return nil
	})
	return snap, err
}

// Actions returns the action log of the session.
func (m *Manager) Actions(ctx context.Context, id string) ([]domain.Action, error) {
	var actions []domain.Action
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.load(ctx, id)
		if err != nil {
			return err
		}
		actions = slices.Clone(l.actions)
		return nil
	})
	return actions, err
}

// Delete removes the session from the store and the cache.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.remember(id, nil)
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// load returns the live session, replaying the stored log when the cache is
// missing or behind the store (another replica appended to it).
func (m *Manager) load(ctx context.Context, id string) (*live, error) {
	rec, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordingNotFound) {
			m.remember(id, nil)
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	if l := m.cached(id); l != nil && slices.Equal(l.actions, rec.Actions) {
		return l, nil
	}

	l := &live{ide: m.newIDE(), actions: slices.Clone(rec.Actions)}
	if err := l.ide.ApplyActions(ctx, rec.Actions); err != nil {
		return nil, fmt.Errorf("failed to replay session %s: %w", id, err)
	}
	m.logger.Debug("session replayed", "session_id", id, "actions", len(rec.Actions))
	m.remember(id, l)
	return l, nil
}

func (m *Manager) persist(ctx context.Context, id string, l *live) error {
	actions := l.actions
	if actions == nil {
		actions = []domain.Action{}
	}
	if err := m.store.Save(ctx, &domain.Recording{ID: id, Actions: actions}); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	m.remember(id, l)
	return nil
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
