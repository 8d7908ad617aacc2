package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const resetTokenPurpose = "password_reset"

// ErrInvalidResetToken covers every verification failure: bad signature,
// tampering, wrong purpose, and expiry. Callers must not be able to tell
// them apart, so the reasons are collapsed into one sentinel.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

type resetClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// IssueResetToken produces a signed, timestamped token binding the given
// email address. Tokens are stateless: nothing is persisted, and a token
// remains verifiable for any number of uses until it ages out.
func IssueResetToken(email, secret string) (string, error) {
	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Purpose: resetTokenPurpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyResetToken checks the token's signature and age, returning the
// embedded email address. Elapsed time is measured from the issued-at
// claim against maxAge, so the same token can be checked against
// different windows. Whether the email belongs to an account is the
// caller's concern, not this function's.
func VerifyResetToken(tokenString, secret string, maxAge time.Duration) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &resetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidResetToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", ErrInvalidResetToken
	}

	claims, ok := token.Claims.(*resetClaims)
	if !ok || !token.Valid || claims.Purpose != resetTokenPurpose {
		return "", ErrInvalidResetToken
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return "", ErrInvalidResetToken
	}
	if time.Since(claims.IssuedAt.Time) > maxAge {
		return "", ErrInvalidResetToken
	}

	return claims.Subject, nil
}
