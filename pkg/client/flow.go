package client

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/VadimTolstov/rococo-sub000/internal/authserver"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// LoginOptions drive a complete authorization-code flow with PKCE on
// behalf of a resource owner.
type LoginOptions struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
	Username    string
	Password    string
}

// loginChallenge mirrors the JSON the authorization endpoint returns when
// the request is parked for login.
type loginChallenge struct {
	RequestID string `json:"request_id"`
	CSRFToken string `json:"csrf_token"`
	LoginURL  string `json:"login_url"`
}

// Login runs the whole authorization-code flow: authorize, login, code
// redemption. The PKCE verifier and state never leave this call.
func (c *Client) Login(ctx context.Context, opts LoginOptions) (*core.TokenSet, error) {
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	code, err := c.obtainCode(ctx, opts, challenge, state)
	if err != nil {
		return nil, err
	}

	return c.redeemCode(ctx, opts, code, verifier)
}

func (c *Client) obtainCode(ctx context.Context, opts LoginOptions, challenge, state string) (string, error) {
	authorizeURL := c.url().
		setPath(authserver.AuthorizeRoute).
		addQueryParam("response_type", "code").
		addQueryParam("client_id", opts.ClientID).
		addQueryParam("redirect_uri", opts.RedirectURI).
		addQueryParam("scope", strings.Join(opts.Scopes, " ")).
		addQueryParam("state", state).
		addQueryParam("code_challenge", challenge).
		addQueryParam("code_challenge_method", core.CodeChallengeMethodS256).
		build()

	req, err := http.NewRequestWithContext(ctx, "GET", authorizeURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating authorize request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	switch {
	case resp.StatusCode == http.StatusFound:
		// an existing session skipped the login form
		return codeFromRedirect(resp, state)
	case resp.StatusCode >= 400:
		return "", parseErrorResponse(resp)
	}

	var parked loginChallenge
	if err := json.NewDecoder(resp.Body).Decode(&parked); err != nil {
		return "", fmt.Errorf("decoding login challenge: %w", err)
	}

	return c.completeLogin(ctx, parked, opts, state)
}

func (c *Client) completeLogin(ctx context.Context, parked loginChallenge, opts LoginOptions, state string) (string, error) {
	form := url.Values{
		"request_id": {parked.RequestID},
		"csrf_token": {parked.CSRFToken},
		"username":   {opts.Username},
		"password":   {opts.Password},
	}

	loginURL := c.url().setPath(parked.LoginURL).build()
	req, err := http.NewRequestWithContext(ctx, "POST", loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return "", parseErrorResponse(resp)
	}
	if resp.StatusCode != http.StatusFound {
		return "", fmt.Errorf("unexpected login response status %d", resp.StatusCode)
	}
	return codeFromRedirect(resp, state)
}

func (c *Client) redeemCode(ctx context.Context, opts LoginOptions, code, verifier string) (*core.TokenSet, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {opts.ClientID},
		"redirect_uri":  {opts.RedirectURI},
		"code_verifier": {verifier},
	}

	tokenURL := c.url().setPath(authserver.TokenRoute).build()
	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp)
	}

	var tokens core.TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	return &tokens, nil
}

// codeFromRedirect extracts the authorization code from a redirect to the
// client's redirect_uri and checks the returned state.
func codeFromRedirect(resp *http.Response, state string) (string, error) {
	location, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		return "", fmt.Errorf("parsing redirect location: %w", err)
	}

	query := location.Query()
	if errCode := query.Get("error"); errCode != "" {
		return "", OAuthFlowError{
			Code:        errCode,
			Description: query.Get("error_description"),
		}
	}
	if query.Get("state") != state {
		return "", fmt.Errorf("authorization response state does not match the request")
	}
	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("authorization response carries no code")
	}
	return code, nil
}

func randomState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
