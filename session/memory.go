package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
)

type memorySession struct {
	id       string
	messages []protocol.Message
	touched  time.Time
	mu       sync.RWMutex
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Append(_ context.Context, msg protocol.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	s.touched = time.Now()
	return nil
}

func (s *memorySession) Messages(_ context.Context) ([]protocol.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]protocol.Message, len(s.messages))
	for i, msg := range s.messages {
		copied[i] = msg
		copied[i].ToolCalls = slices.Clone(msg.ToolCalls)
	}
	return copied, nil
}

func (s *memorySession) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.touched = time.Now()
	return nil
}

func (s *memorySession) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.touched)
}

// MemoryStore keeps transcripts in a process-local map. With a non-zero TTL
// it sweeps idle sessions opportunistically on access; a swept id behaves
// like an unknown id and mints a fresh session.
type MemoryStore struct {
	systemPrompt string
	ttl          time.Duration
	sessions     map[string]*memorySession
	mu           sync.Mutex
	locks        keyedMutex
}

// NewMemoryStore creates a MemoryStore seeding new sessions with
// systemPrompt. ttl of zero disables eviction.
func NewMemoryStore(systemPrompt string, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		systemPrompt: systemPrompt,
		ttl:          ttl,
		sessions:     make(map[string]*memorySession),
	}
}

func (m *MemoryStore) GetOrCreate(_ context.Context, id string) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s, false, nil
		}
	}

	s := &memorySession{
		id:      uuid.Must(uuid.NewV7()).String(),
		touched: time.Now(),
		messages: []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, m.systemPrompt),
		},
	}
	m.sessions[s.id] = s
	return s, true, nil
}

func (m *MemoryStore) Lock(id string)   { m.locks.lock(id) }
func (m *MemoryStore) Unlock(id string) { m.locks.unlock(id) }

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	now := time.Now()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// keyedMutex provides one mutex per session id so transcript mutation for a
// single session serializes while distinct sessions proceed in parallel.
// Entries are reference counted and removed once the last holder or waiter
// releases, so the map tracks only sessions with in-flight turns and does
// not outlive swept sessions.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(id string) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &keyedLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
}

func (k *keyedMutex) unlock(id string) {
	k.mu.Lock()
	l := k.locks[id]
	if l != nil {
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
	}
	k.mu.Unlock()

	if l != nil {
		l.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
