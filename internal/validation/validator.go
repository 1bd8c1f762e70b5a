package validation

import (
	"fmt"
	"net/url"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

const defaultAccessTokenTTL = 2 * time.Hour

// ValidateClients checks the configured client table and fills in defaults.
// Redirect URIs must be absolute so that exact-match comparison cannot be
// confused by relative references.
func ValidateClients(clients []core.RegisteredClient) ([]core.RegisteredClient, error) {
	seenIDs := make(map[string]struct{})
	var validClients []core.RegisteredClient

	for i, client := range clients {
		if client.ID == "" {
			return nil, fmt.Errorf("client #%d missing client_id", i)
		}
		if _, exists := seenIDs[client.ID]; exists {
			return nil, fmt.Errorf("client_id '%s' is not unique", client.ID)
		}
		seenIDs[client.ID] = struct{}{}

		if len(client.RedirectURIs) == 0 {
			return nil, fmt.Errorf("client '%s' has no redirect_uris", client.ID)
		}
		for _, uri := range client.RedirectURIs {
			parsed, err := url.Parse(uri)
			if err != nil {
				return nil, fmt.Errorf("client '%s' redirect_uri '%s': %w", client.ID, uri, err)
			}
			if !parsed.IsAbs() {
				return nil, fmt.Errorf("client '%s' redirect_uri '%s' is not absolute", client.ID, uri)
			}
			if parsed.Fragment != "" {
				return nil, fmt.Errorf("client '%s' redirect_uri '%s' must not carry a fragment", client.ID, uri)
			}
		}

		if client.AccessTokenTTL <= 0 {
			client.AccessTokenTTL = defaultAccessTokenTTL
		}

		validClients = append(validClients, client)
	}

	return validClients, nil
}
