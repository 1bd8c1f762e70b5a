package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/api/middleware"
	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/config"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

const (
	HealthCheckRoute = "/healthz"
	SessionRoute     = "/api/session"
)

const sessionContextKey = "gateway_session"

// SessionView is what the gateway tells frontends about the presented
// token. It is computed per request and always returned with status 200;
// an anonymous caller simply gets null fields.
type SessionView struct {
	Username  string     `json:"username"`
	IssuedAt  *time.Time `json:"issuedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Server fronts the catalog services: it verifies bearer tokens, answers
// session introspection and proxies authenticated traffic upstream.
type Server struct {
	verifier TokenVerifier
	routes   []config.GatewayRoute
}

func NewServer(verifier TokenVerifier, routes []config.GatewayRoute) *Server {
	return &Server{
		verifier: verifier,
		routes:   routes,
	}
}

func (s *Server) Routes() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+SessionRoute, s.handleSession)

	for _, route := range s.routes {
		proxy, err := newProxy(route.Upstream)
		if err != nil {
			return nil, err
		}
		pattern := strings.TrimSuffix(route.Prefix, "/")
		mux.Handle(pattern+"/", s.requireAuth(proxy))
		mux.Handle(pattern, s.requireAuth(proxy))
	}

	return middleware.Chain(mux), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleSession reports the verified claims of the presented token. An
// absent or invalid token is not an error here, it is the anonymous view.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view := SessionView{}
	if session, ok := s.verifyRequest(r); ok {
		view.Username = session.Subject
		view.IssuedAt = &session.IssuedAt
		view.ExpiresAt = &session.ExpiresAt
	}
	presenter.JSON(w, r, view, http.StatusOK)
}

// requireAuth gates upstream traffic on a valid bearer token. Rejections
// carry no detail about why the token failed.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.verifyRequest(r)
		if !ok {
			presenter.Error(w, r, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) verifyRequest(r *http.Request) (*core.Session, bool) {
	auth := r.Header.Get("Authorization")
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))
	if raw == "" || raw == auth {
		return nil, false
	}
	session, err := s.verifier.Verify(r.Context(), raw)
	if err != nil {
		return nil, false
	}
	return session, true
}

// SessionFromContext returns the verified session attached by requireAuth.
func SessionFromContext(ctx context.Context) (*core.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*core.Session)
	return session, ok
}
