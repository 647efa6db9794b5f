package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Persisted keys of a console session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// State is what survives between requests or CLI invocations: the bearer
// token and the serialized user it belongs to.
type State struct {
	Token string
	User  json.RawMessage
}

// Complete reports whether both keys are present.
func (s State) Complete() bool {
	return s.Token != "" && len(s.User) > 0
}

// Store persists one session. Load returns a zero State when nothing is saved.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, nil
}

func (m *MemoryStore) Save(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	return nil
}
