package authserver

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/VadimTolstov/rococo-sub000/internal/api/middleware"
	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/audit"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// handleToken redeems an authorization code for a token set. The code is
// consumed before any further check runs, so a failed redemption still
// burns it.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	entry := core.AuditEntry{
		ID:     middleware.CorrelationCtx(r.Context()),
		Action: "token.issue",
	}
	defer func() {
		entry.Time = time.Now()
		if err := s.auditor.Log(entry); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write audit entry")
		}
	}()

	fail := func(code, description string, status int) {
		entry.Error = code
		presenter.OAuthError(w, r, code, description, status)
	}

	if err := r.ParseForm(); err != nil {
		fail(core.ErrorCodeInvalidRequest, "malformed form body", http.StatusBadRequest)
		return
	}

	if grantType := r.PostFormValue("grant_type"); grantType != "authorization_code" {
		fail(core.ErrorCodeUnsupportedGrantType, "grant_type must be authorization_code", http.StatusBadRequest)
		return
	}

	codeValue := r.PostFormValue("code")
	clientID := r.PostFormValue("client_id")
	redirectURI := r.PostFormValue("redirect_uri")
	verifier := r.PostFormValue("code_verifier")
	entry.ClientID = clientID

	if codeValue == "" || clientID == "" || redirectURI == "" {
		fail(core.ErrorCodeInvalidRequest, "code, client_id and redirect_uri are required", http.StatusBadRequest)
		return
	}

	client, err := s.clients.Lookup(clientID)
	if err != nil {
		fail(core.ErrorCodeInvalidClient, "unknown client", http.StatusUnauthorized)
		return
	}

	// Consume first. A code that fails any later check is already gone and
	// can never be retried with corrected parameters.
	code, err := s.codes.Consume(r.Context(), codeValue)
	if err != nil {
		if !errors.Is(err, core.ErrCodeNotFound) {
			log.Ctx(r.Context()).Error().Err(err).Msg("code store failure")
		}
		fail(core.ErrorCodeInvalidGrant, "code is invalid or expired", http.StatusBadRequest)
		return
	}
	entry.Subject = code.Subject

	if code.ClientID != clientID {
		fail(core.ErrorCodeInvalidGrant, "code was not issued to this client", http.StatusBadRequest)
		return
	}
	if code.RedirectURI != redirectURI {
		fail(core.ErrorCodeInvalidGrant, "redirect_uri does not match the authorization request", http.StatusBadRequest)
		return
	}

	if code.CodeChallenge != "" {
		if verifier == "" {
			fail(core.ErrorCodeInvalidRequest, "code_verifier is required", http.StatusBadRequest)
			return
		}
		computed := oauth2.S256ChallengeFromVerifier(verifier)
		if subtle.ConstantTimeCompare([]byte(computed), []byte(code.CodeChallenge)) != 1 {
			fail(core.ErrorCodeInvalidGrant, "code_verifier does not match the challenge", http.StatusBadRequest)
			return
		}
	}

	tokens, err := s.issuer.Issue(code.Subject, client.ID, code.Scopes, client.AccessTokenTTL)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to sign tokens")
		fail(core.ErrorCodeInvalidRequest, "could not issue tokens", http.StatusInternalServerError)
		return
	}

	entry.Granted = true
	entry.TokenFingerprint = audit.Fingerprint(tokens.AccessToken)
	entry.Metadata = map[string]any{"scopes": code.Scopes}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	presenter.JSON(w, r, tokens, http.StatusOK)
}
