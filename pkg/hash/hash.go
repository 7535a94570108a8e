// Package hash provides the one-way digest used for PII anonymization and
// submission identifier derivation. The digest is deterministic: the same
// input always yields the same 64-character lowercase hex output.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex-encoded SHA-256 of the input's UTF-8 bytes.
func Digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
