package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "admin:session:"
	keyVerified = "verified"
)

// RedisStore hands out per-browser session stores kept in Redis hashes.
// Every load or save pushes the expiry forward by the TTL.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewID returns a fresh console session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Session returns the store of one console session.
func (s *RedisStore) Session(id string) Store {
	return &redisSession{parent: s, key: keyPrefix + id}
}

type redisSession struct {
	parent *RedisStore
	key    string
}

func (r *redisSession) Load(ctx context.Context) (State, error) {
	fields, err := r.parent.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return State{}, nil
	}

	if err := r.parent.client.Expire(ctx, r.key, r.parent.ttl).Err(); err != nil {
		return State{}, fmt.Errorf("refresh session ttl: %w", err)
	}

	st := State{Token: fields[KeyToken]}
	if u := fields[KeyUser]; u != "" {
		st.User = json.RawMessage(u)
	}
	return st, nil
}

func (r *redisSession) Save(ctx context.Context, st State) error {
	_, err := r.parent.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key, KeyToken, st.Token, KeyUser, string(st.User))
		pipe.Expire(ctx, r.key, r.parent.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *redisSession) Clear(ctx context.Context) error {
	if err := r.parent.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Verified reports whether the session was verified against the backend by
// the process started with boot.
func (s *RedisStore) Verified(ctx context.Context, id, boot string) (bool, error) {
	v, err := s.client.HGet(ctx, keyPrefix+id, keyVerified).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session verification: %w", err)
	}
	return v == boot, nil
}

// MarkVerified tags an existing session as verified by boot. The tag lives
// in the session hash and expires with it; a session that no longer exists
// is left alone.
func (s *RedisStore) MarkVerified(ctx context.Context, id, boot string) error {
	key := keyPrefix + id
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil || n == 0 {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, keyVerified, boot)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark session verified: %w", err)
	}
	return nil
}
