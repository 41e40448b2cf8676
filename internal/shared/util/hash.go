package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a stable hex identifier for a caller scope, so raw identities never
// appear in storage keys.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
