package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-signing-secret"

func TestIssueVerifyResetToken(t *testing.T) {
	token, err := IssueResetToken("a@b.com", testSecret)
	if err != nil {
		t.Fatalf("IssueResetToken() unexpected error: %v", err)
	}

	email, err := VerifyResetToken(token, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("VerifyResetToken() unexpected error: %v", err)
	}
	if email != "a@b.com" {
		t.Errorf("VerifyResetToken() email = %q, want %q", email, "a@b.com")
	}
}

func TestVerifyResetTokenExpired(t *testing.T) {
	token, err := IssueResetToken("a@b.com", testSecret)
	if err != nil {
		t.Fatalf("IssueResetToken() unexpected error: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	if _, err := VerifyResetToken(token, testSecret, time.Second); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("VerifyResetToken() past max age error = %v, want ErrInvalidResetToken", err)
	}
}

func TestVerifyResetTokenTampered(t *testing.T) {
	token, err := IssueResetToken("a@b.com", testSecret)
	if err != nil {
		t.Fatalf("IssueResetToken() unexpected error: %v", err)
	}

	b := []byte(token)
	i := len(b) / 2
	if b[i] == 'a' {
		b[i] = 'b'
	} else {
		b[i] = 'a'
	}

	if _, err := VerifyResetToken(string(b), testSecret, time.Hour); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("VerifyResetToken() of tampered token error = %v, want ErrInvalidResetToken", err)
	}
}

func TestVerifyResetTokenWrongSecret(t *testing.T) {
	token, err := IssueResetToken("a@b.com", testSecret)
	if err != nil {
		t.Fatalf("IssueResetToken() unexpected error: %v", err)
	}

	if _, err := VerifyResetToken(token, "another-secret", time.Hour); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("VerifyResetToken() with wrong secret error = %v, want ErrInvalidResetToken", err)
	}
}

func TestVerifyResetTokenWrongPurpose(t *testing.T) {
	// A token signed with the right secret but a different purpose must
	// not pass as a reset token.
	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "a@b.com",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Purpose: "session",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := VerifyResetToken(token, testSecret, time.Hour); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("VerifyResetToken() with wrong purpose error = %v, want ErrInvalidResetToken", err)
	}
}

func TestVerifyResetTokenGarbage(t *testing.T) {
	if _, err := VerifyResetToken("not-a-token", testSecret, time.Hour); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("VerifyResetToken() of garbage error = %v, want ErrInvalidResetToken", err)
	}
}
