package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

const (
	// DefaultTokenLength is the byte length of one-time link tokens.
	DefaultTokenLength = 32 // 256 bits
)

// NewToken returns an opaque, URL-safe token built from byteLength bytes
// of cryptographically secure randomness. A non-positive byteLength falls
// back to DefaultTokenLength. The value is safe to embed in a query
// string without further escaping.
func NewToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = DefaultTokenLength
	}

	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
