package authserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/api/middleware"
	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/audit"
	"github.com/VadimTolstov/rococo-sub000/internal/buildinfo"
	"github.com/VadimTolstov/rococo-sub000/internal/clients"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
	"github.com/VadimTolstov/rococo-sub000/internal/keys"
	"github.com/VadimTolstov/rococo-sub000/internal/tasks"
	"github.com/VadimTolstov/rococo-sub000/internal/token"
)

const cleanupInterval = 5 * time.Minute

// Options carries the issuer-level settings of the authorization server.
type Options struct {
	// Issuer is this server's issuer URI (the `iss` claim).
	Issuer string

	// Audience is the resource-server audience of access tokens.
	Audience string

	CodeTTL    time.Duration
	SessionTTL time.Duration
	PendingTTL time.Duration

	// TemplateDir overrides the embedded login/error templates.
	TemplateDir string
}

type Server struct {
	opts        Options
	clients     *clients.Registry
	users       core.CredentialStore
	codes       core.CodeStore
	keys        *keys.Provider
	issuer      *token.Issuer
	auditor     core.Auditor
	taskManager *tasks.Manager
	pending     *pendingStore
	sessions    *sessionStore
	templates   *templateSet
}

func NewServer(
	opts Options,
	registry *clients.Registry,
	users core.CredentialStore,
	codeStore core.CodeStore,
	keyProvider *keys.Provider,
	auditor core.Auditor,
	taskManager *tasks.Manager,
) (*Server, error) {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 120 * time.Second
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 8 * time.Hour
	}
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = 10 * time.Minute
	}
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	templates, err := newTemplateSet(opts.TemplateDir)
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:        opts,
		clients:     registry,
		users:       users,
		codes:       codeStore,
		keys:        keyProvider,
		issuer:      token.New(opts.Issuer, opts.Audience, keyProvider),
		auditor:     auditor,
		taskManager: taskManager,
		pending:     newPendingStore(opts.PendingTTL),
		sessions:    newSessionStore(opts.SessionTTL),
		templates:   templates,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// authorization-code flow
	mux.HandleFunc("GET "+AuthorizeRoute, s.handleAuthorize)
	mux.HandleFunc("POST "+LoginRoute, s.handleLogin)
	mux.HandleFunc("POST "+TokenRoute, s.handleToken)

	// verifier bootstrap
	mux.HandleFunc("GET "+DiscoveryRoute, s.handleDiscovery)
	mux.HandleFunc("GET "+JWKSRoute, s.handleJWKS)

	// admin routes
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+AdminAuditRoute, s.handleAdminAudit)
	adminMux.HandleFunc("GET "+AdminTasksRoute, s.handleAdminTasks)
	adminMux.HandleFunc("POST "+AdminTaskTriggerRoute, s.handleAdminTaskTrigger)
	adminMux.HandleFunc("GET "+AdminTaskLogsRoute, s.handleAdminTaskLogs)
	mux.Handle(AdminParent, middleware.AdminAuth(s.keys.Public())(adminMux))

	return middleware.Chain(mux)
}

// TokenIssuer exposes the server's issuer, e.g. for minting the admin
// token at startup.
func (s *Server) TokenIssuer() *token.Issuer {
	return s.issuer
}

// RegisterTasks adds the periodic cleanup tasks to the task manager.
// Cleanup reclaims memory only; expiry correctness never depends on it.
func (s *Server) RegisterTasks() {
	if s.taskManager == nil {
		return
	}
	s.taskManager.Register("codes.cleanup", cleanupInterval, s.cleanupCodesTask)
	s.taskManager.Register("sessions.cleanup", cleanupInterval, s.cleanupSessionsTask)
}

func (s *Server) Close() error {
	return s.templates.Close()
}

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

// wantsJSON reports whether the caller asked for a JSON representation of
// browser-facing endpoints. The flow client uses this to drive the login
// form programmatically.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
