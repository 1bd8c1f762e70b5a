package codes

import (
	"context"
	"sync"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

var _ core.CodeStore = (*MemoryStore)(nil)

// MemoryStore keeps authorization codes in process memory. It is the
// default backend for single-instance deployments. Consume deletes the
// entry under the lock, so concurrent redemptions of the same code cannot
// both succeed.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]core.AuthorizationCode
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]core.AuthorizationCode),
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, code core.AuthorizationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[code.Code] = code
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, code string) (*core.AuthorizationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.codes[code]
	if !ok {
		return nil, core.ErrCodeNotFound
	}
	delete(s.codes, code)

	// expiry is checked lazily here; an expired entry is treated the same
	// as an absent one
	if record.Expired(s.now()) {
		return nil, core.ErrCodeNotFound
	}
	return &record, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var deleted int64
	for k, record := range s.codes {
		if record.Expired(now) {
			delete(s.codes, k)
			deleted++
		}
	}
	return deleted, nil
}
