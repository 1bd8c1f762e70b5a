package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog/log"
)

// newProxy builds a reverse proxy to the given upstream base URL. The
// request path is forwarded unchanged; upstream services mount their
// handlers under the same prefix the gateway routes on.
func newProxy(upstream string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream %q: %w", upstream, err)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Ctx(r.Context()).Error().Err(err).Str("upstream", upstream).Msg("upstream request failed")
			w.WriteHeader(http.StatusBadGateway)
		},
	}, nil
}
