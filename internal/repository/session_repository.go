package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adewale/walletapp/internal/model"
)

const sessionPrefix = "session:"

// RedisSessionRepo is the server-held session map: an opaque id keyed
// under "session:{id}" resolves to the owning account. Redis expires
// the key at the session's ExpiresAt, so stale sessions disappear
// without a sweeper.
type RedisSessionRepo struct {
	client *redis.Client
}

func NewRedisSessionRepo(client *redis.Client) *RedisSessionRepo {
	return &RedisSessionRepo{client: client}
}

// Create serializes the session to JSON and stores it with a TTL
// derived from its expiry.
func (r *RedisSessionRepo) Create(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	key := sessionPrefix + session.ID
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Get resolves a session id. redis.Nil (missing or expired key) maps
// to ErrNotFound so the auth guard can treat both the same way.
func (r *RedisSessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes the session key. Once deleted the id can never
// resolve again, which is what makes logout final.
func (r *RedisSessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
