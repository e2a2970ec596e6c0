package token

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// FingerprintLength is the number of hex characters in a fingerprint.
const FingerprintLength = 12

// Fingerprint returns the first FingerprintLength hex characters of the
// SHA-256 of token. An empty token has an empty fingerprint.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])[:FingerprintLength]
}

// Normalize trims whitespace and an optional "Bearer " prefix that helper
// programs sometimes emit.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw
}
