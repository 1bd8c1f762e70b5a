package authserver

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/VadimTolstov/rococo-sub000/internal/api/middleware"
	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/audit"
	"github.com/VadimTolstov/rococo-sub000/internal/codes"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// loginChallenge is the JSON shape of an authorization request parked for
// login, returned when the caller negotiates application/json instead of
// the HTML form.
type loginChallenge struct {
	RequestID string `json:"request_id"`
	CSRFToken string `json:"csrf_token"`
	ClientID  string `json:"client_id"`
	LoginURL  string `json:"login_url"`
}

// handleAuthorize validates the authorization request, then either issues
// a code straight away (existing browser session) or parks the request and
// presents the login form.
//
// Redirect-target errors (unknown client, unregistered redirect_uri) are
// shown to the user directly; the server never redirects to an unvalidated
// URI. Every later failure redirects back to the client with an OAuth2
// error code.
func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := core.AuthorizationRequest{
		ResponseType:        query.Get("response_type"),
		ClientID:            query.Get("client_id"),
		RedirectURI:         query.Get("redirect_uri"),
		Scopes:              strings.Fields(query.Get("scope")),
		State:               query.Get("state"),
		CodeChallenge:       query.Get("code_challenge"),
		CodeChallengeMethod: query.Get("code_challenge_method"),
	}

	client, err := s.clients.Lookup(req.ClientID)
	if err != nil {
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidClient, "unknown client")
		return
	}
	if !client.RedirectURIAllowed(req.RedirectURI) {
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidRequest, "redirect_uri is not registered for this client")
		return
	}

	// The redirect target is trusted from here on.
	if req.ResponseType != "code" {
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "response_type must be code")
		return
	}
	if client.RequirePKCE && req.CodeChallenge == "" {
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "code_challenge is required")
		return
	}
	if req.CodeChallenge != "" && req.CodeChallengeMethod != core.CodeChallengeMethodS256 {
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "code_challenge_method must be S256")
		return
	}
	if !client.ScopesAllowed(req.Scopes) {
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "requested scope is not registered for this client")
		return
	}

	// Single sign-on: an authenticated browser skips the login form.
	if session, ok := s.sessionFromRequest(r); ok {
		s.issueCodeAndRedirect(w, r, req, client, session.Subject)
		return
	}

	pending, err := s.pending.Create(req)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create pending authorization request")
		s.renderAuthorizeError(w, r, core.ErrorCodeInvalidRequest, "could not process the request")
		return
	}

	if wantsJSON(r) {
		presenter.JSON(w, r, loginChallenge{
			RequestID: pending.ID,
			CSRFToken: pending.CSRFToken,
			ClientID:  req.ClientID,
			LoginURL:  LoginRoute,
		}, http.StatusOK)
		return
	}

	s.templates.renderLogin(w, loginPageData{
		RequestID: pending.ID,
		CSRFToken: pending.CSRFToken,
		ClientID:  req.ClientID,
		Scopes:    req.Scopes,
	})
}

// issueCodeAndRedirect mints a fresh single-use code bound to the request
// and sends the user agent back to the client.
func (s *Server) issueCodeAndRedirect(
	w http.ResponseWriter,
	r *http.Request,
	req core.AuthorizationRequest,
	client *core.RegisteredClient,
	subject string,
) {
	value, err := codes.Generate()
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to generate authorization code")
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "could not issue a code")
		return
	}

	now := time.Now()
	code := core.AuthorizationCode{
		Code:                value,
		ClientID:            client.ID,
		Subject:             subject,
		RedirectURI:         req.RedirectURI,
		Scopes:              req.Scopes,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
		IssuedAt:            now,
		ExpiresAt:           now.Add(s.opts.CodeTTL),
	}
	if err := s.codes.Save(r.Context(), code); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to save authorization code")
		s.redirectAuthorizeError(w, r, req, core.ErrorCodeInvalidRequest, "could not issue a code")
		return
	}

	s.auditCode(r, code)

	redirect, _ := url.Parse(req.RedirectURI)
	values := redirect.Query()
	values.Set("code", value)
	if req.State != "" {
		values.Set("state", req.State)
	}
	redirect.RawQuery = values.Encode()
	http.Redirect(w, r, redirect.String(), http.StatusFound)
}

// renderAuthorizeError reports a failure that must never be redirected to
// the supplied redirect_uri.
func (s *Server) renderAuthorizeError(w http.ResponseWriter, r *http.Request, code, description string) {
	s.auditDenied(r, "authorize.request", code)
	if wantsJSON(r) {
		presenter.OAuthError(w, r, code, description, http.StatusBadRequest)
		return
	}
	s.templates.renderError(w, http.StatusBadRequest, errorPageData{
		Error:       code,
		Description: description,
	})
}

// redirectAuthorizeError sends the error back to the already-validated
// redirect target, preserving state.
func (s *Server) redirectAuthorizeError(
	w http.ResponseWriter,
	r *http.Request,
	req core.AuthorizationRequest,
	code, description string,
) {
	s.auditDenied(r, "authorize.request", code)

	redirect, err := url.Parse(req.RedirectURI)
	if err != nil {
		s.renderAuthorizeError(w, r, code, description)
		return
	}
	values := redirect.Query()
	values.Set("error", code)
	values.Set("error_description", description)
	if req.State != "" {
		values.Set("state", req.State)
	}
	redirect.RawQuery = values.Encode()
	http.Redirect(w, r, redirect.String(), http.StatusFound)
}

func (s *Server) auditCode(r *http.Request, code core.AuthorizationCode) {
	if err := s.auditor.Log(core.AuditEntry{
		ID:               middleware.CorrelationCtx(r.Context()),
		Time:             time.Now(),
		Action:           "code.issue",
		Subject:          code.Subject,
		ClientID:         code.ClientID,
		Granted:          true,
		TokenFingerprint: audit.Fingerprint(code.Code),
		Metadata: map[string]any{
			"scopes":       code.Scopes,
			"redirect_uri": code.RedirectURI,
		},
	}); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write audit entry")
	}
}

func (s *Server) auditDenied(r *http.Request, action, reason string) {
	if err := s.auditor.Log(core.AuditEntry{
		ID:      middleware.CorrelationCtx(r.Context()),
		Time:    time.Now(),
		Action:  action,
		Granted: false,
		Error:   reason,
	}); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write audit entry")
	}
}
