package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Email returns the hex SHA-256 digest of the lower-cased email address.
// Used as the challenge partition key so the stored key reveals no PII.
func Email(email string) string {
	return sum(strings.ToLower(email))
}

// Code returns the hex SHA-256 digest of an OTP code. Only the digest is
// stored; verification compares digests.
func Code(code string) string {
	return sum(code)
}

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
