package authserver

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// pendingRequest is an authorization request parked while the resource
// owner completes the login form. The CSRF token binds the form post back
// to the exact request that rendered it.
type pendingRequest struct {
	ID        string
	Request   core.AuthorizationRequest
	CSRFToken string
	ExpiresAt time.Time
}

type pendingStore struct {
	mu       sync.Mutex
	requests map[string]*pendingRequest
	ttl      time.Duration
	now      func() time.Time
}

func newPendingStore(ttl time.Duration) *pendingStore {
	return &pendingStore{
		requests: make(map[string]*pendingRequest),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (p *pendingStore) Create(req core.AuthorizationRequest) (*pendingRequest, error) {
	csrf := make([]byte, 32)
	if _, err := rand.Read(csrf); err != nil {
		return nil, err
	}

	pending := &pendingRequest{
		ID:        xid.New().String(),
		Request:   req,
		CSRFToken: base64.RawURLEncoding.EncodeToString(csrf),
		ExpiresAt: p.now().Add(p.ttl),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests[pending.ID] = pending
	return pending, nil
}

// Get returns the pending request without removing it. Expired entries
// are dropped on access.
func (p *pendingStore) Get(id string) (*pendingRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, ok := p.requests[id]
	if !ok {
		return nil, false
	}
	if !p.now().Before(pending.ExpiresAt) {
		delete(p.requests, id)
		return nil, false
	}
	return pending, true
}

func (p *pendingStore) Delete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.requests, id)
}

func (p *pendingStore) DeleteExpired() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	var removed int64
	for id, pending := range p.requests {
		if !now.Before(pending.ExpiresAt) {
			delete(p.requests, id)
			removed++
		}
	}
	return removed
}
