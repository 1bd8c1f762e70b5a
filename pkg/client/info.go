package client

import (
	"context"
	"net/http"

	"github.com/VadimTolstov/rococo-sub000/internal/authserver"
	"github.com/VadimTolstov/rococo-sub000/internal/buildinfo"
)

func (c *Client) Info(
	ctx context.Context,
) (*buildinfo.Info, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(authserver.AboutRoute).
		build(), nil)
	if err != nil {
		return nil, "", err
	}
	var info buildinfo.Info
	correlation, err := c.do(req, &info)
	return &info, correlation, err
}
