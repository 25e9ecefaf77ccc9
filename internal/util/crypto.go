package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const (
	// StateBytes is the entropy of a link state token (24 bytes).
	StateBytes = 24
	// VerifierBytes is the entropy of a PKCE code verifier (32 bytes, 43 chars encoded).
	VerifierBytes = 32
)

// CryptoRandomBytes generates cryptographically secure random bytes
func CryptoRandomBytes(length int) ([]byte, error) {
	buf := make([]byte, length)
	_, err := rand.Read(buf)
	return buf, err
}

// RandomURLSafe returns n random bytes as unpadded base64url.
func RandomURLSafe(n int) (string, error) {
	buf, err := CryptoRandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewState generates an opaque, unguessable OAuth state token.
func NewState(n int) (string, error) {
	return RandomURLSafe(n)
}

// NewCodeVerifier generates a PKCE code verifier (RFC 7636 section 4.1).
func NewCodeVerifier(n int) (string, error) {
	return RandomURLSafe(n)
}

// CodeChallenge derives the S256 code challenge for a verifier:
// BASE64URL-ENCODE(SHA256(ASCII(code_verifier))) without padding.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
