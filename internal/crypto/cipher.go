package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// cipherTokenPrefix versions the ciphertext format so a future scheme
// change can coexist with stored secrets.
const cipherTokenPrefix = "v1."

var (
	ErrMissingKeyMaterial = errors.New("vault key material is missing")
	ErrDecryptionFailed   = errors.New("could not decrypt secret with current key")
)

// SecretCipher performs authenticated encryption of short secrets using
// AES-256-GCM. The key is derived once at construction and immutable for
// the life of the process; rotating it makes previously written
// ciphertext unreadable, which callers must treat as an expected
// condition rather than a crash.
type SecretCipher struct {
	aead cipher.AEAD
}

// NewSecretCipher derives a 256-bit key from keyMaterial and returns a
// ready cipher. An empty keyMaterial is a configuration error: the key
// must never silently default.
func NewSecretCipher(keyMaterial string) (*SecretCipher, error) {
	if keyMaterial == "" {
		return nil, ErrMissingKeyMaterial
	}

	block, err := aes.NewCipher(deriveKey(keyMaterial))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &SecretCipher{aead: aead}, nil
}

// deriveKey accepts either a properly generated key (url-safe base64 of
// exactly 32 bytes) used verbatim, or an arbitrary passphrase hashed
// through SHA-256. The derivation is deterministic, so the same
// configuration value always yields the same key. Passphrase-derived
// keys carry only as much entropy as the passphrase.
func deriveKey(raw string) []byte {
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding} {
		if key, err := enc.DecodeString(raw); err == nil && len(key) == 32 {
			return key
		}
	}

	digest := sha256.Sum256([]byte(raw))
	return digest[:]
}

// Encrypt seals a UTF-8 plaintext into an opaque token safe for storage
// and transport. A fresh random nonce is generated per call, so
// encrypting the same plaintext twice yields different tokens.
func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return cipherTokenPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Any malformed, tampered,
// truncated, or wrong-key token fails with ErrDecryptionFailed; corrupt
// input never yields garbage plaintext.
func (c *SecretCipher) Decrypt(token string) (string, error) {
	encoded, ok := strings.CutPrefix(token, cipherTokenPrefix)
	if !ok {
		return "", ErrDecryptionFailed
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
