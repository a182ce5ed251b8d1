package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n.
// The string is url-safe: A-Z, a-z, 0-9, - and _.
func Generate(n int) (string, error) {
	// base64 yields 4 characters per 3 bytes; round up
	b := make([]byte, (n*3+3)/4+3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
