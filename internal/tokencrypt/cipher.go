package tokencrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// keyLen is the AES-256 key size derived from the operator secret.
	keyLen = 32

	// minSecretLen rejects secrets too short to carry 128 bits of entropy.
	minSecretLen = 16

	formatPrefix = "v1."
)

// hkdfInfo binds derived keys to this purpose so the same secret cannot
// produce the key of another subsystem.
var hkdfInfo = []byte("provider-refresh-token-encryption-v1")

var (
	// ErrDecryptionFailed is returned for tampered, foreign-key or malformed ciphertext.
	ErrDecryptionFailed = errors.New("token decryption failed")

	// ErrSecretTooShort is returned when a configured secret is below minSecretLen.
	ErrSecretTooShort = errors.New("encryption secret too short")
)

// Cipher encrypts refresh tokens with AES-256-GCM.
// Ciphertext format: "v1." + base64url([12-byte nonce][ciphertext+GCM tag]).
// Encryption always uses the primary key; decryption also tries previous keys
// so that keys can be rotated without re-linking every account.
type Cipher struct {
	primary  cipher.AEAD
	previous []cipher.AEAD
}

// New creates a cipher from the primary secret and optional previous secrets.
func New(secret string, previous ...string) (*Cipher, error) {
	primary, err := newAEAD(secret)
	if err != nil {
		return nil, err
	}

	c := &Cipher{primary: primary}
	for _, s := range previous {
		if s == "" {
			continue
		}
		aead, err := newAEAD(s)
		if err != nil {
			return nil, fmt.Errorf("previous key: %w", err)
		}
		c.previous = append(c.previous, aead)
	}
	return c, nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	if len(secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}

	key := make([]byte, keyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext under the primary key with a random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.primary.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.primary.Seal(nonce, nonce, []byte(plaintext), nil)
	return formatPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext produced by Encrypt. It never returns a
// plaintext unless the GCM tag verifies.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	encoded, ok := strings.CutPrefix(ciphertext, formatPrefix)
	if !ok {
		return "", fmt.Errorf("%w: unknown format", ErrDecryptionFailed)
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed encoding", ErrDecryptionFailed)
	}

	nonceSize := c.primary.NonceSize()
	if len(data) < nonceSize+c.primary.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}
	nonce, sealed := data[:nonceSize], data[nonceSize:]

	if plaintext, err := c.primary.Open(nil, nonce, sealed, nil); err == nil {
		return string(plaintext), nil
	}
	for _, aead := range c.previous {
		if plaintext, err := aead.Open(nil, nonce, sealed, nil); err == nil {
			return string(plaintext), nil
		}
	}

	return "", fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
}
