package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studiolane/roomcraft/pkg/observability"
)

// RedisConfig configures the Redis-backed session store.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is the Redis password (empty for no auth).
	Password string

	// DB is the Redis database number.
	DB int

	// KeyPrefix is prepended to all session keys. Defaults to "roomcraft:session:".
	KeyPrefix string
}

// RedisStore is a Redis-backed session store for multi-instance deployments.
// Expiration is delegated to Redis TTLs, so Cleanup is a no-op.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// casAttempts bounds optimistic retries when concurrent writers race on the
// same session key.
const casAttempts = 3

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "roomcraft:session:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Session().OnSessionLoad(ctx, "redis", false)
		return nil, nil
	}
	if err != nil {
		observability.Session().OnSessionError(ctx, "redis", err)
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if sess.IsExpired() {
		_ = s.client.Del(ctx, s.key(sessionID)).Err()
		observability.Session().OnSessionLoad(ctx, "redis", false)
		return nil, nil
	}

	observability.Session().OnSessionLoad(ctx, "redis", true)
	return &sess, nil
}

// Set stores a session, rejecting stale revisions. The check-and-set runs
// under WATCH so two instances racing on the same session cannot interleave.
func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	key := s.key(sess.ID)

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return ErrStale
		}
	}

	cas := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var stored Session
			if jerr := json.Unmarshal(data, &stored); jerr == nil && stored.Revision >= sess.Revision {
				return ErrStale
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < casAttempts; i++ {
		err = s.client.Watch(ctx, cas, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		if !errors.Is(err, ErrStale) {
			observability.Session().OnSessionError(ctx, "redis", err)
		}
		return err
	}

	observability.Session().OnSessionSave(ctx, "redis", sess.Revision)
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		observability.Session().OnSessionError(ctx, "redis", err)
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires sessions via key TTLs.
func (s *RedisStore) Cleanup(ctx context.Context) error {
	return nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
