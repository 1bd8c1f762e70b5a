package authserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/VadimTolstov/rococo-sub000/internal/audit"
	"github.com/VadimTolstov/rococo-sub000/internal/clients"
	"github.com/VadimTolstov/rococo-sub000/internal/codes"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
	"github.com/VadimTolstov/rococo-sub000/internal/keys"
)

const (
	testClientID    = "rococo-web"
	testRedirectURI = "http://127.0.0.1:3000/authorized"
	testUsername    = "anna"
	testPassword    = "primavera"
)

type staticCreds map[string]string

func (c staticCreds) Authenticate(_ context.Context, username, password string) (string, error) {
	if stored, ok := c[username]; ok && stored == password {
		return username, nil
	}
	return "", core.ErrInvalidCredentials
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	provider, err := keys.New()
	if err != nil {
		t.Fatalf("generating keys: %v", err)
	}

	registry := clients.NewRegistry([]core.RegisteredClient{{
		ID:             testClientID,
		RedirectURIs:   []string{testRedirectURI},
		Scopes:         []string{"openid", "profile"},
		RequirePKCE:    true,
		AccessTokenTTL: 2 * time.Hour,
	}})

	srv, err := NewServer(
		Options{
			Issuer:   "https://auth.example.org",
			Audience: "rococo-gateway",
			CodeTTL:  2 * time.Minute,
		},
		registry,
		staticCreds{testUsername: testPassword},
		codes.NewMemoryStore(),
		provider,
		audit.NewInMemoryAuditor(),
		nil,
	)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	return srv, srv.Routes()
}

func authorizeQuery(challenge string, overrides map[string]string) url.Values {
	values := url.Values{
		"response_type":         {"code"},
		"client_id":             {testClientID},
		"redirect_uri":          {testRedirectURI},
		"scope":                 {"openid profile"},
		"state":                 {"xyz"},
		"code_challenge":        {challenge},
		"code_challenge_method": {"S256"},
	}
	for key, value := range overrides {
		if value == "" {
			values.Del(key)
			continue
		}
		values.Set(key, value)
	}
	return values
}

// startLogin drives GET /oauth2/authorize in JSON mode and returns the
// parked login challenge.
func startLogin(t *testing.T, handler http.Handler, challenge string) loginChallenge {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, AuthorizeRoute+"?"+authorizeQuery(challenge, nil).Encode(), nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("authorize status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var parked loginChallenge
	if err := json.Unmarshal(rec.Body.Bytes(), &parked); err != nil {
		t.Fatalf("decoding login challenge: %v", err)
	}
	if parked.RequestID == "" || parked.CSRFToken == "" {
		t.Fatalf("incomplete login challenge: %+v", parked)
	}
	return parked
}

func postLogin(handler http.Handler, parked loginChallenge, username, password string) *httptest.ResponseRecorder {
	form := url.Values{
		"request_id": {parked.RequestID},
		"csrf_token": {parked.CSRFToken},
		"username":   {username},
		"password":   {password},
	}
	req := httptest.NewRequest(http.MethodPost, LoginRoute, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// obtainCode runs authorize + login and returns the code from the redirect.
func obtainCode(t *testing.T, handler http.Handler, challenge string) string {
	t.Helper()

	parked := startLogin(t, handler, challenge)
	rec := postLogin(handler, parked, testUsername, testPassword)
	if rec.Code != http.StatusFound {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parsing redirect location: %v", err)
	}
	if got := location.Query().Get("state"); got != "xyz" {
		t.Errorf("state = %q, want xyz", got)
	}
	code := location.Query().Get("code")
	if code == "" {
		t.Fatalf("redirect carries no code: %s", location)
	}
	return code
}

func postToken(handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, TokenRoute, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func tokenForm(code, verifier string) url.Values {
	return url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {testClientID},
		"redirect_uri":  {testRedirectURI},
		"code_verifier": {verifier},
	}
}

func oauthErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v (body %s)", err, rec.Body.String())
	}
	return resp.Error
}

func TestAuthorizeRejectsWithoutRedirect(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	tests := []struct {
		name      string
		overrides map[string]string
		wantError string
	}{
		{"unknown client", map[string]string{"client_id": "nope"}, core.ErrorCodeInvalidClient},
		{"unregistered redirect", map[string]string{"redirect_uri": "http://evil.example.org/cb"}, core.ErrorCodeInvalidRequest},
		{"redirect prefix attack", map[string]string{"redirect_uri": testRedirectURI + "/../other"}, core.ErrorCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, AuthorizeRoute+"?"+authorizeQuery(challenge, tt.overrides).Encode(), nil)
			req.Header.Set("Accept", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if rec.Header().Get("Location") != "" {
				t.Error("error was redirected, must be rendered in place")
			}
			if got := oauthErrorCode(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestAuthorizeRedirectsErrors(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	tests := []struct {
		name      string
		overrides map[string]string
	}{
		{"wrong response type", map[string]string{"response_type": "token"}},
		{"missing code challenge", map[string]string{"code_challenge": "", "code_challenge_method": ""}},
		{"plain challenge method", map[string]string{"code_challenge_method": "plain"}},
		{"unregistered scope", map[string]string{"scope": "openid admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, AuthorizeRoute+"?"+authorizeQuery(challenge, tt.overrides).Encode(), nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			location, err := url.Parse(rec.Header().Get("Location"))
			if err != nil {
				t.Fatalf("parsing location: %v", err)
			}
			if !strings.HasPrefix(location.String(), testRedirectURI) {
				t.Fatalf("redirected to %s, want registered redirect_uri", location)
			}
			if got := location.Query().Get("error"); got != core.ErrorCodeInvalidRequest {
				t.Errorf("error = %q, want %q", got, core.ErrorCodeInvalidRequest)
			}
			if got := location.Query().Get("state"); got != "xyz" {
				t.Errorf("state = %q, want xyz", got)
			}
		})
	}
}

func TestAuthorizeRendersLoginForm(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	req := httptest.NewRequest(http.MethodGet, AuthorizeRoute+"?"+authorizeQuery(challenge, nil).Encode(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="csrf_token"`) || !strings.Contains(body, `name="request_id"`) {
		t.Error("login form is missing hidden request fields")
	}
	if !strings.Contains(body, testClientID) {
		t.Error("login form does not name the requesting client")
	}
}

func TestLoginCSRFMismatchKeepsPending(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	parked := startLogin(t, handler, challenge)

	forged := parked
	forged.CSRFToken = "not-the-token"
	rec := postLogin(handler, forged, testUsername, testPassword)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("forged post status = %d, want 403", rec.Code)
	}

	// The real user can still complete the same pending request.
	rec = postLogin(handler, parked, testUsername, testPassword)
	if rec.Code != http.StatusFound {
		t.Fatalf("genuine post status = %d, want 302", rec.Code)
	}
}

func TestLoginFailureIsTerminal(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	parked := startLogin(t, handler, challenge)

	rec := postLogin(handler, parked, testUsername, "wrong-password")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := oauthErrorCode(t, rec); got != core.ErrorCodeAccessDenied {
		t.Errorf("error = %q, want %q", got, core.ErrorCodeAccessDenied)
	}

	// The pending request is burned; even correct credentials cannot
	// resurrect it.
	rec = postLogin(handler, parked, testUsername, testPassword)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("retry status = %d, want 400", rec.Code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	srv, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	code := obtainCode(t, handler, challenge)

	rec := postToken(handler, tokenForm(code, verifier))
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}

	var tokens core.TokenSet
	if err := json.Unmarshal(rec.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("decoding token response: %v", err)
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("token_type = %q, want Bearer", tokens.TokenType)
	}
	if tokens.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("expires_in = %d", tokens.ExpiresIn)
	}
	if tokens.IDToken == "" {
		t.Error("response carries no id_token")
	}

	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return srv.keys.Public(), nil
	}

	access, err := jwt.Parse(tokens.AccessToken, keyFunc)
	if err != nil {
		t.Fatalf("parsing access token: %v", err)
	}
	claims := access.Claims.(jwt.MapClaims)
	if claims["iss"] != "https://auth.example.org" {
		t.Errorf("iss = %v", claims["iss"])
	}
	if claims["sub"] != testUsername {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["aud"] != "rococo-gateway" {
		t.Errorf("access token aud = %v, want the gateway audience", claims["aud"])
	}

	id, err := jwt.Parse(tokens.IDToken, keyFunc)
	if err != nil {
		t.Fatalf("parsing id token: %v", err)
	}
	idClaims := id.Claims.(jwt.MapClaims)
	if idClaims["aud"] != testClientID {
		t.Errorf("id token aud = %v, want the client_id", idClaims["aud"])
	}
}

func TestTokenCodeIsSingleUse(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	code := obtainCode(t, handler, challenge)

	if rec := postToken(handler, tokenForm(code, verifier)); rec.Code != http.StatusOK {
		t.Fatalf("first redemption status = %d", rec.Code)
	}

	rec := postToken(handler, tokenForm(code, verifier))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second redemption status = %d, want 400", rec.Code)
	}
	if got := oauthErrorCode(t, rec); got != core.ErrorCodeInvalidGrant {
		t.Errorf("error = %q, want %q", got, core.ErrorCodeInvalidGrant)
	}
}

func TestTokenPKCEMismatchBurnsCode(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	code := obtainCode(t, handler, challenge)

	rec := postToken(handler, tokenForm(code, oauth2.GenerateVerifier()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := oauthErrorCode(t, rec); got != core.ErrorCodeInvalidGrant {
		t.Errorf("error = %q, want %q", got, core.ErrorCodeInvalidGrant)
	}

	// The failed attempt consumed the code; the correct verifier is too late.
	rec = postToken(handler, tokenForm(code, verifier))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("retry status = %d, want 400", rec.Code)
	}
	if got := oauthErrorCode(t, rec); got != core.ErrorCodeInvalidGrant {
		t.Errorf("retry error = %q, want %q", got, core.ErrorCodeInvalidGrant)
	}
}

func TestTokenErrors(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	tests := []struct {
		name       string
		mutate     func(form url.Values)
		wantStatus int
		wantError  string
	}{
		{
			name:       "unsupported grant type",
			mutate:     func(f url.Values) { f.Set("grant_type", "client_credentials") },
			wantStatus: http.StatusBadRequest,
			wantError:  core.ErrorCodeUnsupportedGrantType,
		},
		{
			name:       "missing code",
			mutate:     func(f url.Values) { f.Del("code") },
			wantStatus: http.StatusBadRequest,
			wantError:  core.ErrorCodeInvalidRequest,
		},
		{
			name:       "unknown client",
			mutate:     func(f url.Values) { f.Set("client_id", "nope") },
			wantStatus: http.StatusUnauthorized,
			wantError:  core.ErrorCodeInvalidClient,
		},
		{
			name:       "unknown code",
			mutate:     func(f url.Values) { f.Set("code", "never-issued") },
			wantStatus: http.StatusBadRequest,
			wantError:  core.ErrorCodeInvalidGrant,
		},
		{
			name:       "missing verifier",
			mutate:     func(f url.Values) { f.Del("code_verifier") },
			wantStatus: http.StatusBadRequest,
			wantError:  core.ErrorCodeInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := tokenForm(obtainCode(t, handler, challenge), verifier)
			tt.mutate(form)

			rec := postToken(handler, form)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := oauthErrorCode(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestTokenRedirectURIMismatch(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	form := tokenForm(obtainCode(t, handler, challenge), verifier)
	form.Set("redirect_uri", testRedirectURI+"/")

	rec := postToken(handler, form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := oauthErrorCode(t, rec); got != core.ErrorCodeInvalidGrant {
		t.Errorf("error = %q, want %q", got, core.ErrorCodeInvalidGrant)
	}
}

func TestSessionSingleSignOn(t *testing.T) {
	_, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	parked := startLogin(t, handler, challenge)
	loginRec := postLogin(handler, parked, testUsername, testPassword)
	if loginRec.Code != http.StatusFound {
		t.Fatalf("login status = %d", loginRec.Code)
	}

	cookies := loginRec.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == SessionCookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("login did not set a session cookie")
	}
	if !session.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// A second authorization skips the login form entirely.
	req := httptest.NewRequest(http.MethodGet, AuthorizeRoute+"?"+authorizeQuery(challenge, nil).Encode(), nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want direct 302", rec.Code)
	}
	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parsing location: %v", err)
	}
	if location.Query().Get("code") == "" {
		t.Errorf("redirect carries no code: %s", location)
	}
}

func TestDiscoveryDocument(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, DiscoveryRoute, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=3600") {
		t.Errorf("Cache-Control = %q", cc)
	}

	var doc discoveryDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding discovery document: %v", err)
	}
	if doc.Issuer != "https://auth.example.org" {
		t.Errorf("issuer = %q", doc.Issuer)
	}
	if doc.JWKSURI != "https://auth.example.org"+JWKSRoute {
		t.Errorf("jwks_uri = %q", doc.JWKSURI)
	}
	if len(doc.CodeChallengeMethodsSupported) != 1 || doc.CodeChallengeMethodsSupported[0] != "S256" {
		t.Errorf("code_challenge_methods_supported = %v", doc.CodeChallengeMethodsSupported)
	}
}

func TestJWKSServesSigningKey(t *testing.T) {
	srv, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, JWKSRoute, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var set struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			Use string `json:"use"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatalf("decoding jwks: %v", err)
	}
	if len(set.Keys) != 1 {
		t.Fatalf("keys = %d, want 1", len(set.Keys))
	}
	if set.Keys[0].Kid != srv.keys.KeyID() {
		t.Errorf("kid = %q, want %q", set.Keys[0].Kid, srv.keys.KeyID())
	}
	if set.Keys[0].Kty != "RSA" || set.Keys[0].Use != "sig" {
		t.Errorf("key = %+v", set.Keys[0])
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, AdminAuditRoute, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	adminToken, err := srv.issuer.IssueAdmin(time.Hour)
	if err != nil {
		t.Fatalf("IssueAdmin() error = %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, AdminAuditRoute, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authorized status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAdminAuditRecordsFlow(t *testing.T) {
	srv, handler := newTestServer(t)
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	code := obtainCode(t, handler, challenge)
	if rec := postToken(handler, tokenForm(code, verifier)); rec.Code != http.StatusOK {
		t.Fatalf("token status = %d", rec.Code)
	}

	adminToken, err := srv.issuer.IssueAdmin(time.Hour)
	if err != nil {
		t.Fatalf("IssueAdmin() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, AdminAuditRoute, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entries []core.AuditEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decoding audit entries: %v", err)
	}

	var sawCode, sawToken bool
	for _, entry := range entries {
		switch entry.Action {
		case "code.issue":
			sawCode = true
		case "token.issue":
			sawToken = true
			if !entry.Granted || entry.TokenFingerprint == "" {
				t.Errorf("token entry = %+v", entry)
			}
		}
	}
	if !sawCode || !sawToken {
		t.Errorf("audit log misses flow entries: code=%v token=%v", sawCode, sawToken)
	}
}

func TestHealthAndAbout(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthCheckRoute, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, AboutRoute, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("about status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "version") {
		t.Errorf("about body = %s", rec.Body.String())
	}
}
