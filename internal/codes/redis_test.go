package codes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, "test:code:")
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s, mr
}

func TestRedisStoreConsume(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	code := testCode("code-1", 2*time.Minute)
	if err := s.Save(ctx, code); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Consume(ctx, "code-1")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	// timestamps survive a JSON round trip but lose their monotonic clock
	if got.Code != code.Code || got.ClientID != code.ClientID ||
		got.Subject != code.Subject || got.CodeChallenge != code.CodeChallenge {
		t.Errorf("Consume() mismatch: got %+v", got)
	}
	if diff := cmp.Diff(code.Scopes, got.Scopes); diff != "" {
		t.Errorf("Consume() scopes mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Consume(ctx, "code-1"); !errors.Is(err, core.ErrCodeNotFound) {
		t.Errorf("second Consume() error = %v, want ErrCodeNotFound", err)
	}
}

func TestRedisStoreConsumeUnknown(t *testing.T) {
	s, _ := newTestRedisStore(t)
	if _, err := s.Consume(context.Background(), "nope"); !errors.Is(err, core.ErrCodeNotFound) {
		t.Errorf("Consume() error = %v, want ErrCodeNotFound", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testCode("code-1", time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// let the key TTL elapse
	mr.FastForward(2 * time.Minute)

	if _, err := s.Consume(ctx, "code-1"); !errors.Is(err, core.ErrCodeNotFound) {
		t.Errorf("Consume() after TTL error = %v, want ErrCodeNotFound", err)
	}
}

func TestRedisStoreSaveExpired(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	// a code that is already past its TTL is silently dropped
	if err := s.Save(ctx, testCode("stale", -time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := s.Consume(ctx, "stale"); !errors.Is(err, core.ErrCodeNotFound) {
		t.Errorf("Consume() error = %v, want ErrCodeNotFound", err)
	}
}

func TestFromConfig(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		storeType string
		raw       map[string]any
		wantErr   bool
	}{
		{"memory", "memory", nil, false},
		{"default is memory", "", nil, false},
		{"redis", "redis", map[string]any{"addr": mr.Addr()}, false},
		{"redis missing addr", "redis", nil, true},
		{"unknown type", "etcd", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := FromConfig(ctx, tt.storeType, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && store == nil {
				t.Error("FromConfig() returned nil store")
			}
		})
	}
}
