package core

import (
	"slices"
	"time"
)

// CodeChallengeMethodS256 is the only PKCE challenge method this server
// accepts (RFC 7636). The "plain" method is rejected to prevent downgrade.
const CodeChallengeMethodS256 = "S256"

// RegisteredClient describes an OAuth2 client known to the authorization
// server. Clients are provisioned via static configuration and are immutable
// after process start.
type RegisteredClient struct {
	// ID is the public client identifier (client_id).
	ID string `yaml:"client_id" json:"client_id"`

	// RedirectURIs are the allowed redirection endpoints. Matching is
	// byte-for-byte exact, no wildcard or prefix matching.
	RedirectURIs []string `yaml:"redirect_uris" json:"redirect_uris"`

	// Scopes are the scopes this client may request.
	Scopes []string `yaml:"scopes" json:"scopes"`

	// RequirePKCE forces the authorization-code flow to carry a
	// code_challenge. All clients in this design are public, so this
	// should stay enabled.
	RequirePKCE bool `yaml:"require_pkce" json:"require_pkce"`

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" json:"access_token_ttl"`
}

// RedirectURIAllowed reports whether uri exactly matches one of the
// registered redirect URIs.
func (c *RegisteredClient) RedirectURIAllowed(uri string) bool {
	return slices.Contains(c.RedirectURIs, uri)
}

// ScopesAllowed reports whether every requested scope is registered for
// this client.
func (c *RegisteredClient) ScopesAllowed(requested []string) bool {
	for _, s := range requested {
		if !slices.Contains(c.Scopes, s) {
			return false
		}
	}
	return true
}

// AuthorizationRequest is the validated query of GET /oauth2/authorize.
type AuthorizationRequest struct {
	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scopes              []string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizationCode is a single-use, short-lived code bound to the exact
// {client_id, redirect_uri, code_challenge} triple of the authorization
// request it was issued for. It is removed from the store the moment it is
// consumed; a second redemption attempt never finds it.
type AuthorizationCode struct {
	Code                string    `json:"code"`
	ClientID            string    `json:"client_id"`
	Subject             string    `json:"subject"`
	RedirectURI         string    `json:"redirect_uri"`
	Scopes              []string  `json:"scopes"`
	CodeChallenge       string    `json:"code_challenge"`
	CodeChallengeMethod string    `json:"code_challenge_method"`
	IssuedAt            time.Time `json:"issued_at"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// Expired reports whether the code's TTL has elapsed at the given instant.
func (c *AuthorizationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// TokenSet is the successful response of the token endpoint.
type TokenSet struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// Session is the verified-claims projection computed per request from a
// presented token. It is never stored; it exists only while the request
// that presented the token is being processed.
type Session struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
