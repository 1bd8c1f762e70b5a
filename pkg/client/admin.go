package client

import (
	"context"

	"github.com/VadimTolstov/rococo-sub000/internal/authserver"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, limit uint) ([]core.AuditEntry, string, error) {
	var resp []core.AuditEntry
	correlation, err := c.get(ctx, c.url().
		setPath(authserver.AdminAuditRoute).
		addQueryParam("limit", limit).
		build(), &resp)
	return resp, correlation, err
}
