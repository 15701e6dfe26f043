package site

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// ContentHash returns the hex SHA3-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ETag returns a strong entity tag for data.
func ETag(data []byte) string {
	return `"` + ContentHash(data)[:32] + `"`
}
