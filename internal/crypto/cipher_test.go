package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestNewSecretCipherMissingKey(t *testing.T) {
	_, err := NewSecretCipher("")
	if !errors.Is(err, ErrMissingKeyMaterial) {
		t.Fatalf("NewSecretCipher(\"\") error = %v, want ErrMissingKeyMaterial", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := NewSecretCipher("a-passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	for _, plaintext := range []string{"", "hunter2", "pässwörd with ünicode", strings.Repeat("x", 4096)} {
		token, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) unexpected error: %v", plaintext, err)
		}
		if !strings.HasPrefix(token, "v1.") {
			t.Errorf("Encrypt(%q) token missing version prefix: %q", plaintext, token)
		}

		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt() unexpected error: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip = %q, want %q", got, plaintext)
		}
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	c, err := NewSecretCipher("a-passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	t1, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}
	t2, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}

	if t1 == t2 {
		t.Error("two encryptions of the same plaintext produced identical tokens (nonce should differ)")
	}

	for _, token := range []string{t1, t2} {
		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt() unexpected error: %v", err)
		}
		if got != "same plaintext" {
			t.Errorf("Decrypt() = %q, want %q", got, "same plaintext")
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	c1, err := NewSecretCipher("key-one")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}
	c2, err := NewSecretCipher("key-two")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	token, err := c1.Encrypt("rotated away")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}

	if _, err := c2.Decrypt(token); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt() with wrong key error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptTamperedToken(t *testing.T) {
	c, err := NewSecretCipher("a-passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	token, err := c.Encrypt("integrity matters")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}

	// Flip one character of the encoded payload.
	b := []byte(token)
	i := len(b) - 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := c.Decrypt(string(b)); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt() of tampered token error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptMalformedTokens(t *testing.T) {
	c, err := NewSecretCipher("a-passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	for _, token := range []string{"", "no-prefix", "v1.", "v1.%%%not-base64%%%", "v1.c2hvcnQ"} {
		if _, err := c.Decrypt(token); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("Decrypt(%q) error = %v, want ErrDecryptionFailed", token, err)
		}
	}
}

func TestDeriveKeyAcceptsGeneratedKeyVerbatim(t *testing.T) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("rand.Read() unexpected error: %v", err)
	}

	padded := base64.URLEncoding.EncodeToString(raw)
	unpadded := base64.RawURLEncoding.EncodeToString(raw)

	// Both encodings of the same key bytes must derive the same cipher:
	// a token written under one form decrypts under the other.
	c1, err := NewSecretCipher(padded)
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}
	c2, err := NewSecretCipher(unpadded)
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	token, err := c1.Encrypt("verbatim key")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}
	got, err := c2.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt() unexpected error: %v", err)
	}
	if got != "verbatim key" {
		t.Errorf("Decrypt() = %q, want %q", got, "verbatim key")
	}
}

func TestDeriveKeyIsDeterministicForPassphrases(t *testing.T) {
	c1, err := NewSecretCipher("same passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}
	c2, err := NewSecretCipher("same passphrase")
	if err != nil {
		t.Fatalf("NewSecretCipher() unexpected error: %v", err)
	}

	token, err := c1.Encrypt("stable derivation")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}
	got, err := c2.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt() unexpected error: %v", err)
	}
	if got != "stable derivation" {
		t.Errorf("Decrypt() = %q, want %q", got, "stable derivation")
	}
}
