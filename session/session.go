// Package session manages per-session transcripts for the conversation
// orchestrator: keyed storage with get-or-create semantics and per-session
// mutual exclusion.
package session

import (
	"context"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
)

// Session holds one ordered transcript. Implementations must be safe for
// concurrent use; transcripts are mutated only by appending turns.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Append adds a turn to the end of the transcript.
	Append(ctx context.Context, msg protocol.Message) error
	// Messages returns a defensive copy of the transcript.
	Messages(ctx context.Context) ([]protocol.Message, error)
	// Clear resets the transcript.
	Clear(ctx context.Context) error
}

// Store is keyed transcript storage. An absent or unrecognized id mints a
// new unique identifier and seeds the transcript with a single system turn
// holding the store's persona instructions.
type Store interface {
	// GetOrCreate resolves id to a session. created reports whether a new
	// session was minted.
	GetOrCreate(ctx context.Context, id string) (s Session, created bool, err error)
	// Lock acquires the per-session mutex for id. Concurrent requests
	// sharing a session id must serialize around the whole engine/tool loop,
	// not just individual appends, to keep invocation/result turns adjacent.
	Lock(id string)
	// Unlock releases the per-session mutex for id.
	Unlock(id string)
}

// NewStore creates a Store from configuration, seeding every new session
// with systemPrompt.
func NewStore(cfg *Config, systemPrompt string) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(systemPrompt, cfg.TTL), nil
	case BackendRedis:
		return NewRedisStore(&cfg.Redis, systemPrompt, cfg.TTL), nil
	default:
		return nil, &UnknownBackendError{Backend: cfg.Backend}
	}
}

// UnknownBackendError reports an unrecognized session backend name.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return "session: unknown backend: " + e.Backend
}
