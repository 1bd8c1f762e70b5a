package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// SigningAlgorithm is the only algorithm this server signs with.
const SigningAlgorithm = "RS256"

// Provider holds the process-wide signing key pair. It is constructed once
// at startup and shared read-only by the token issuer, the JWKS endpoint
// and the admin middleware. The private half never leaves the process; the
// key is not persisted, so tokens become unverifiable across restarts (a
// documented gap of this design, not an oversight).
type Provider struct {
	key *rsa.PrivateKey
	kid string
}

// New generates an RSA-2048 key pair. A failure here is fatal for the
// process; there is no degraded mode without a signing key.
func New() (*Provider, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}

	// kid is the RFC 7638 thumbprint of the public key, so verifiers can
	// select the right key from the JWKS by the token's kid header.
	jwk := jose.JSONWebKey{Key: key.Public(), Algorithm: SigningAlgorithm, Use: "sig"}
	thumb, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("computing key thumbprint: %w", err)
	}

	return &Provider{
		key: key,
		kid: base64.RawURLEncoding.EncodeToString(thumb),
	}, nil
}

// Signer returns the private key and its kid for signing tokens.
func (p *Provider) Signer() (*rsa.PrivateKey, string) {
	return p.key, p.kid
}

// Public returns the verification half of the key pair.
func (p *Provider) Public() *rsa.PublicKey {
	return &p.key.PublicKey
}

// KeyID returns the kid assigned to the active key.
func (p *Provider) KeyID() string {
	return p.kid
}

// PublicKeySet exports the verification key material as a JSON Web Key Set.
// The set is a list so that overlapping keys are structurally possible, but
// this design populates exactly one (no rotation).
func (p *Provider) PublicKeySet() jose.JSONWebKeySet {
	return jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				Key:       p.key.Public(),
				KeyID:     p.kid,
				Algorithm: SigningAlgorithm,
				Use:       "sig",
			},
		},
	}
}
