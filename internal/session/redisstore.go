package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pharmadesk:session:"

// RedisStore keeps the session in Redis with a TTL, for shared-terminal
// deployments where several workstations present the same operator session.
type RedisStore struct {
	client   *redis.Client
	terminal string
	ttl      time.Duration
}

// NewRedisStore builds a RedisStore scoped to a terminal name.
func NewRedisStore(client *redis.Client, terminal string, ttl time.Duration) *RedisStore {
	if terminal == "" {
		terminal = "default"
	}
	return &RedisStore{client: client, terminal: terminal, ttl: ttl}
}

func (s *RedisStore) key() string {
	return redisKeyPrefix + s.terminal
}

func (s *RedisStore) Load(ctx context.Context) (*Session, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: corrupt redis payload: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
