package authserver

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// handleLogin completes a pending authorization request with resource-owner
// credentials. Authentication failure is terminal: the pending request is
// discarded and the user agent has to start a fresh authorization request.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidRequest, "malformed form body")
		return
	}

	requestID := r.PostFormValue("request_id")
	pending, ok := s.pending.Get(requestID)
	if !ok {
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidRequest, "login request is unknown or has expired")
		return
	}

	// A bad CSRF token keeps the pending request alive so a forged post
	// cannot burn the real user's login attempt.
	csrf := r.PostFormValue("csrf_token")
	if subtle.ConstantTimeCompare([]byte(csrf), []byte(pending.CSRFToken)) != 1 {
		s.auditDenied(r, "login.attempt", "csrf token mismatch")
		if wantsJSON(r) {
			presenter.OAuthError(w, r, core.ErrorCodeInvalidRequest, "invalid csrf token", http.StatusForbidden)
			return
		}
		s.templates.renderError(w, http.StatusForbidden, errorPageData{
			Error:       core.ErrorCodeInvalidRequest,
			Description: "invalid csrf token",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	subject, err := s.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, core.ErrInvalidCredentials) {
			log.Ctx(r.Context()).Error().Err(err).Msg("credential store failure")
		}
		s.pending.Delete(requestID)
		s.auditDenied(r, "login.attempt", core.ErrorCodeAccessDenied)
		if wantsJSON(r) {
			presenter.OAuthError(w, r, core.ErrorCodeAccessDenied, "authentication failed", http.StatusForbidden)
			return
		}
		s.templates.renderError(w, http.StatusForbidden, errorPageData{
			Error:       core.ErrorCodeAccessDenied,
			Description: "authentication failed",
		})
		return
	}

	s.pending.Delete(requestID)

	session, err := s.sessions.Create(subject)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create browser session")
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidRequest, "could not establish a session")
		return
	}
	s.setSessionCookie(w, session)

	client, err := s.clients.Lookup(pending.Request.ClientID)
	if err != nil {
		// Clients are static; a registered client disappearing mid-flow
		// means the configuration changed under us.
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidClient, "unknown client")
		return
	}

	s.issueCodeAndRedirect(w, r, pending.Request, client, subject)
}
