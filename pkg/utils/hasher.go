package utils

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// GetHashFromString returns the 32-byte BLAKE3 digest of s.
func GetHashFromString(s string) []byte {
	sum := blake3.Sum256([]byte(s))
	return sum[:]
}

// Fingerprint returns a short hex BLAKE3 digest of a secret. It is used as a
// cache key and in log lines where the secret itself must not appear.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	return hex.EncodeToString(GetHashFromString(secret)[:8])
}
