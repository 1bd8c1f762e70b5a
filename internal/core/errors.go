package core

import "errors"

// OAuth2 error codes (RFC 6749 §4.1.2.1, §5.2) used across the
// authorization and token endpoints.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeAccessDenied         = "access_denied"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
)

// ErrCodeNotFound is returned by CodeStore.Consume when the presented code
// is unknown, already consumed, or past its TTL. The three cases are
// deliberately indistinguishable.
var ErrCodeNotFound = errors.New("authorization code not found")

// ErrInvalidCredentials is returned by CredentialStore.Authenticate for
// both unknown usernames and wrong passwords, so the endpoint cannot be
// used as a username oracle.
var ErrInvalidCredentials = errors.New("invalid credentials")

// OAuthError carries an RFC 6749 error code alongside a human-readable
// description. It maps onto the standard OAuth2 error JSON at the HTTP
// boundary.
type OAuthError struct {
	Code        string
	Description string
}

func (e *OAuthError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// NewOAuthError builds an OAuthError from one of the ErrorCode constants.
func NewOAuthError(code, description string) *OAuthError {
	return &OAuthError{Code: code, Description: description}
}

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}
