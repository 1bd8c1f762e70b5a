package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "code.issue", "token.issue")
	Action string `json:"action"`

	// Subject identifies the resource owner involved, if known
	Subject string `json:"subject,omitempty"`

	// ClientID that the request was made on behalf of
	ClientID string `json:"client_id,omitempty"`

	// Granted indicates whether the operation succeeded
	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`

	// TokenFingerprint is the SHA-256 fingerprint of the issued code or
	// token. Raw values are never recorded.
	TokenFingerprint string `json:"fingerprint,omitempty"`

	// Metadata contains extra details (scopes, redirect_uri, ...)
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// QueryableAuditor is implemented by auditors that can be read back at
// runtime (currently only the in-memory auditor). The admin API falls back
// to an empty result when the configured auditor cannot be queried.
type QueryableAuditor interface {
	Auditor
	GetRecent(limit int) ([]AuditEntry, error)
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}
