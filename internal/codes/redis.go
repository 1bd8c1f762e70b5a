package codes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

const defaultKeyPrefix = "rococo:code:"

// RedisConfig holds connection settings for the Redis code store backend.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

var _ core.CodeStore = (*RedisStore)(nil)

// RedisStore keeps authorization codes in Redis, enabling a horizontally
// scaled authorization server: every instance sees the same codes, and
// GETDEL gives the same consume-exactly-once guarantee the memory store
// gets from its mutex. TTL expiry is delegated to Redis.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis code store requires 'addr'")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient wraps a pre-configured client. Used by tests with
// miniredis.
func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(code string) string {
	return s.keyPrefix + code
}

func (s *RedisStore) Save(ctx context.Context, code core.AuthorizationCode) error {
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		// already expired, nothing to store
		return nil
	}

	data, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("marshaling authorization code: %w", err)
	}
	if err := s.client.Set(ctx, s.key(code.Code), data, ttl).Err(); err != nil {
		return fmt.Errorf("storing authorization code: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, code string) (*core.AuthorizationCode, error) {
	// GETDEL is atomic: of any number of concurrent consumers exactly one
	// receives the value, the rest observe redis.Nil
	data, err := s.client.GetDel(ctx, s.key(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrCodeNotFound
		}
		return nil, fmt.Errorf("consuming authorization code: %w", err)
	}

	var record core.AuthorizationCode
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling authorization code: %w", err)
	}

	// the key TTL should have evicted expired codes already; check anyway
	if record.Expired(time.Now()) {
		return nil, core.ErrCodeNotFound
	}
	return &record, nil
}

func (s *RedisStore) DeleteExpired(_ context.Context) (int64, error) {
	// Redis evicts expired keys on its own
	return 0, nil
}
