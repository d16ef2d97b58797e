// Package store provides the in-memory call session registry.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"call-center-server/internal/domain/call"
)

// MemoryStore keeps call sessions in a map guarded by a read-write mutex.
// Sessions are never evicted; terminal sessions stay queryable for the life
// of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*call.Session
	log      zerolog.Logger
}

var _ call.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty session registry.
func NewMemoryStore(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*call.Session),
		log:      log.With().Str("component", "session-store").Logger(),
	}
}

// Create registers a session under its call ID.
func (m *MemoryStore) Create(ctx context.Context, sess *call.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sess.CallID]; ok {
		return call.ErrSessionExists
	}
	m.sessions[sess.CallID] = sess
	m.log.Debug().Str("call_id", sess.CallID).Msg("session registered")
	return nil
}

// Get returns the live session for a call ID. The caller is responsible for
// locking the session before touching its state.
func (m *MemoryStore) Get(ctx context.Context, callID string) (*call.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[callID]
	if !ok {
		return nil, call.ErrSessionNotFound
	}
	return sess, nil
}

// List returns all registered sessions, terminal included.
func (m *MemoryStore) List(ctx context.Context) ([]*call.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*call.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess)
	}
	return out, nil
}
