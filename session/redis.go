package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
)

// RedisStore keeps each transcript as a Redis list of JSON-encoded turns.
// Idle eviction delegates to key expiry: every append refreshes the TTL.
// Lock/Unlock are process-local; running multiple replicas against one
// Redis requires sticky routing of a session to one process.
type RedisStore struct {
	client       *redis.Client
	prefix       string
	ttl          time.Duration
	systemPrompt string
	locks        keyedMutex
}

// NewRedisStore creates a RedisStore from connection configuration.
func NewRedisStore(cfg *RedisConfig, systemPrompt string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix:       cfg.KeyPrefix,
		ttl:          ttl,
		systemPrompt: systemPrompt,
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) GetOrCreate(ctx context.Context, id string) (Session, bool, error) {
	if id != "" {
		exists, err := r.client.Exists(ctx, r.key(id)).Result()
		if err != nil {
			return nil, false, fmt.Errorf("session: probe %s: %w", id, err)
		}
		if exists > 0 {
			return &redisSession{store: r, id: id}, false, nil
		}
	}

	s := &redisSession{
		store: r,
		id:    uuid.Must(uuid.NewV7()).String(),
	}
	if err := s.Append(ctx, protocol.NewMessage(protocol.RoleSystem, r.systemPrompt)); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (r *RedisStore) Lock(id string)   { r.locks.lock(id) }
func (r *RedisStore) Unlock(id string) { r.locks.unlock(id) }

// Close releases the underlying Redis connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

type redisSession struct {
	store *RedisStore
	id    string
}

func (s *redisSession) ID() string {
	return s.id
}

func (s *redisSession) Append(ctx context.Context, msg protocol.Message) error {
	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("session: encode turn: %w", err)
	}

	key := s.store.key(s.id)
	if err := s.store.client.RPush(ctx, key, encoded).Err(); err != nil {
		return fmt.Errorf("session: append to %s: %w", s.id, err)
	}
	if s.store.ttl > 0 {
		if err := s.store.client.Expire(ctx, key, s.store.ttl).Err(); err != nil {
			return fmt.Errorf("session: refresh ttl for %s: %w", s.id, err)
		}
	}
	return nil
}

func (s *redisSession) Messages(ctx context.Context) ([]protocol.Message, error) {
	raw, err := s.store.client.LRange(ctx, s.store.key(s.id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("session: load %s: %w", s.id, err)
	}

	messages := make([]protocol.Message, 0, len(raw))
	for _, item := range raw {
		var msg protocol.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("session: decode turn in %s: %w", s.id, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *redisSession) Clear(ctx context.Context) error {
	if err := s.store.client.Del(ctx, s.store.key(s.id)).Err(); err != nil {
		return fmt.Errorf("session: clear %s: %w", s.id, err)
	}
	return nil
}
