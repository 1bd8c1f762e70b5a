package clients

import (
	"errors"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// ErrClientNotFound is returned by Lookup for unknown client ids.
var ErrClientNotFound = errors.New("client not found")

// Registry is the authoritative, read-only table of registered OAuth2
// clients. It is built once from configuration and never mutated, so it is
// safe for concurrent use without locking.
type Registry struct {
	clients map[string]core.RegisteredClient
}

func NewRegistry(clients []core.RegisteredClient) *Registry {
	m := make(map[string]core.RegisteredClient, len(clients))
	for _, c := range clients {
		m[c.ID] = c
	}
	return &Registry{clients: m}
}

// Lookup returns the client registered under id.
func (r *Registry) Lookup(id string) (*core.RegisteredClient, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	return &c, nil
}
