package util

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoRandomBytes(t *testing.T) {
	t.Run("Generate correct length", func(t *testing.T) {
		bytes, err := CryptoRandomBytes(20)
		require.NoError(t, err)
		assert.Len(t, bytes, 20)
	})

	t.Run("Generate unique values", func(t *testing.T) {
		bytes1, err := CryptoRandomBytes(20)
		require.NoError(t, err)

		bytes2, err := CryptoRandomBytes(20)
		require.NoError(t, err)

		assert.NotEqual(t, bytes1, bytes2, "Random bytes should not be identical")
	})
}

func TestNewState(t *testing.T) {
	t.Run("URL-safe without padding", func(t *testing.T) {
		state, err := NewState(StateBytes)
		require.NoError(t, err)

		// 24 bytes encode to exactly 32 base64 characters
		assert.Len(t, state, 32)
		assert.NotContains(t, state, "=")
		assert.NotContains(t, state, "+")
		assert.NotContains(t, state, "/")

		decoded, err := base64.RawURLEncoding.DecodeString(state)
		require.NoError(t, err)
		assert.Len(t, decoded, StateBytes)
	})

	t.Run("Generate unique values", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			state, err := NewState(StateBytes)
			require.NoError(t, err)
			assert.False(t, seen[state], "state collision")
			seen[state] = true
		}
	})
}

func TestNewCodeVerifier(t *testing.T) {
	verifier, err := NewCodeVerifier(VerifierBytes)
	require.NoError(t, err)

	// RFC 7636: 43..128 characters from the unreserved set
	assert.Len(t, verifier, 43)
	for _, c := range verifier {
		assert.True(t,
			(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
				c == '-' || c == '_',
			"Character '%c' is not base64url", c)
	}
}

func TestCodeChallenge(t *testing.T) {
	t.Run("RFC 7636 appendix B vector", func(t *testing.T) {
		verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
		assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", CodeChallenge(verifier))
	})

	t.Run("Matches independent computation", func(t *testing.T) {
		verifier, err := NewCodeVerifier(VerifierBytes)
		require.NoError(t, err)

		sum := sha256.Sum256([]byte(verifier))
		expected := base64.RawURLEncoding.EncodeToString(sum[:])

		assert.Equal(t, expected, CodeChallenge(verifier))
		assert.Equal(t, CodeChallenge(verifier), CodeChallenge(verifier))
	})

	t.Run("No padding", func(t *testing.T) {
		assert.False(t, strings.HasSuffix(CodeChallenge("x"), "="))
	})
}

func TestWithQuery(t *testing.T) {
	t.Run("Adds parameters", func(t *testing.T) {
		u, err := WithQuery("https://app.example.com/linked", map[string]string{
			"provider": "google",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://app.example.com/linked?provider=google", u)
	})

	t.Run("Keeps existing parameters and skips empty values", func(t *testing.T) {
		u, err := WithQuery("/done?tab=storage", map[string]string{
			"provider": "microsoft",
			"error":    "",
		})
		require.NoError(t, err)
		assert.Equal(t, "/done?provider=microsoft&tab=storage", u)
	})
}
