package authserver

import (
	"net/http"
	"strings"

	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
)

// discoveryDocument is the subset of OIDC provider metadata this server
// publishes. It is enough for go-oidc style verifiers to bootstrap.
type discoveryDocument struct {
	Issuer                           string   `json:"issuer"`
	AuthorizationEndpoint            string   `json:"authorization_endpoint"`
	TokenEndpoint                    string   `json:"token_endpoint"`
	JWKSURI                          string   `json:"jwks_uri"`
	ResponseTypesSupported           []string `json:"response_types_supported"`
	GrantTypesSupported              []string `json:"grant_types_supported"`
	SubjectTypesSupported            []string `json:"subject_types_supported"`
	IDTokenSigningAlgValuesSupported []string `json:"id_token_signing_alg_values_supported"`
	CodeChallengeMethodsSupported    []string `json:"code_challenge_methods_supported"`
	ScopesSupported                  []string `json:"scopes_supported"`
}

// handleDiscovery serves the OIDC discovery document. Both discovery and
// JWKS are stable enough to be cached by verifiers for an hour.
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(s.opts.Issuer, "/")

	doc := discoveryDocument{
		Issuer:                           s.opts.Issuer,
		AuthorizationEndpoint:            base + AuthorizeRoute,
		TokenEndpoint:                    base + TokenRoute,
		JWKSURI:                          base + JWKSRoute,
		ResponseTypesSupported:           []string{"code"},
		GrantTypesSupported:              []string{"authorization_code"},
		SubjectTypesSupported:            []string{"public"},
		IDTokenSigningAlgValuesSupported: []string{"RS256"},
		CodeChallengeMethodsSupported:    []string{"S256"},
		ScopesSupported:                  []string{"openid", "profile"},
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	presenter.JSON(w, r, doc, http.StatusOK)
}

// handleJWKS publishes the signing key set.
func (s *Server) handleJWKS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	presenter.JSON(w, r, s.keys.PublicKeySet(), http.StatusOK)
}
