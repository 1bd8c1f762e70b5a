package core

import "context"

// CredentialStore validates resource-owner credentials.
// Implementations: SQLite-backed user store.
type CredentialStore interface {
	// Authenticate checks username/password and returns the subject
	// identifier on success. Unknown username and wrong password are
	// indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// CodeStore manages the lifecycle of issued authorization codes.
// Implementations: in-memory store, Redis store.
type CodeStore interface {
	// Save records a freshly issued code.
	Save(ctx context.Context, code AuthorizationCode) error

	// Consume removes the code and returns its record. Exactly one of
	// any number of concurrent consumers for the same code succeeds; all
	// others (and any caller presenting an unknown or expired code) get
	// ErrCodeNotFound.
	Consume(ctx context.Context, code string) (*AuthorizationCode, error)

	// DeleteExpired reclaims storage held by expired codes and returns
	// how many were removed. Correctness does not depend on it: expiry
	// is always checked at consumption time.
	DeleteExpired(ctx context.Context) (int64, error)
}
