package client

import (
	"context"

	"github.com/VadimTolstov/rococo-sub000/internal/gateway"
)

// Session asks the gateway what it makes of the configured bearer token.
// The base URL of this client must point at the gateway, not the
// authorization server. Anonymous callers get a view with null fields,
// never an error.
func (c *Client) Session(ctx context.Context) (*gateway.SessionView, error) {
	var view gateway.SessionView
	if _, err := c.get(ctx, c.url().setPath(gateway.SessionRoute).build(), &view); err != nil {
		return nil, err
	}
	return &view, nil
}
