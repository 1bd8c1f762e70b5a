package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns the SHA-256 fingerprint of a code or token value so
// audit entries can be correlated with issued artifacts without ever
// recording the secret itself.
func Fingerprint(value string) string {
	hash := sha256.Sum256([]byte(value))
	return base64.StdEncoding.EncodeToString(hash[:])
}
