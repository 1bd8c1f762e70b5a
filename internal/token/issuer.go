package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
	"github.com/VadimTolstov/rococo-sub000/internal/keys"
)

// AdminScope marks self-issued tokens that may call the admin API.
const AdminScope = "admin"

// Issuer signs token sets with the process signing key. It is immutable
// after construction and safe for concurrent use.
type Issuer struct {
	issuer   string
	audience string
	keys     *keys.Provider
	now      func() time.Time
}

// New creates an Issuer. issuer is this server's issuer URI (the `iss`
// claim); audience is the resource-server audience of access tokens.
func New(issuer, audience string, provider *keys.Provider) *Issuer {
	return &Issuer{
		issuer:   issuer,
		audience: audience,
		keys:     provider,
		now:      time.Now,
	}
}

// Issue mints the access/ID token pair for an authenticated subject. The
// access token is addressed to the gateway audience, the ID token to the
// requesting client.
func (i *Issuer) Issue(subject, clientID string, scopes []string, ttl time.Duration) (*core.TokenSet, error) {
	now := i.now()
	exp := now.Add(ttl)
	scope := strings.Join(scopes, " ")

	accessToken, err := i.sign(jwt.MapClaims{
		"iss":   i.issuer,
		"sub":   subject,
		"aud":   i.audience,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"scope": scope,
	})
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	idToken, err := i.sign(jwt.MapClaims{
		"iss": i.issuer,
		"sub": subject,
		"aud": clientID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("signing id token: %w", err)
	}

	return &core.TokenSet{
		AccessToken: accessToken,
		IDToken:     idToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		Scope:       scope,
	}, nil
}

// IssueAdmin mints a token carrying the admin scope, used to protect the
// server's own admin API. It is addressed to the server itself.
func (i *Issuer) IssueAdmin(ttl time.Duration) (string, error) {
	now := i.now()
	signed, err := i.sign(jwt.MapClaims{
		"iss":   i.issuer,
		"sub":   "rococo-admin",
		"aud":   i.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"scope": AdminScope,
	})
	if err != nil {
		return "", fmt.Errorf("signing admin token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) sign(claims jwt.MapClaims) (string, error) {
	key, kid := i.keys.Signer()
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = kid
	return t.SignedString(key)
}
