package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a path-safe, stable identifier for an owner string.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
