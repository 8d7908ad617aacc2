package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropdesk/dropdesk-go/internal/crypto"
	"github.com/dropdesk/dropdesk-go/internal/mailer"
	"github.com/dropdesk/dropdesk-go/internal/model"
	"github.com/dropdesk/dropdesk-go/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for both unknown accounts and
	// wrong passwords; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService mediates signup, login/logout, and the password-reset
// flow.
type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	mailer   mailer.Mailer

	secretKey        string
	resetTokenMaxAge time.Duration
	sessionTTL       time.Duration
	baseURL          string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	m mailer.Mailer,
	secretKey string,
	resetTokenMaxAge, sessionTTL time.Duration,
	baseURL string,
) *AuthService {
	return &AuthService{
		users:            users,
		sessions:         sessions,
		mailer:           m,
		secretKey:        secretKey,
		resetTokenMaxAge: resetTokenMaxAge,
		sessionTTL:       sessionTTL,
		baseURL:          baseURL,
	}
}

// NormalizeEmail is the comparison key for accounts: trimmed and
// lower-cased. The normalized form is what gets stored, so the unique
// index enforces case-insensitive uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.issueSession(ctx, user)
}

// Login authenticates a user and establishes a session. Unknown account
// and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	// Opportunistic sweep; a failure here must not block the login.
	if err := s.sessions.DeleteExpired(ctx, time.Now().UTC()); err != nil {
		slog.WarnContext(ctx, "expired session sweep failed", "error", err)
	}

	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to a user ID, the gate in front
// of every protected operation.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return 0, ErrInvalidSession
		}
		return 0, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return 0, ErrInvalidSession
	}

	return session.UserID, nil
}

// Logout invalidates a session. Idempotent: a second logout with the
// same token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// GetUser returns safe user data for the authenticated user.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return userToResponse(user), nil
}

// DeleteAccount removes the user; the storage layer cascades to every
// owned row (vault entries, stores, products, orders, sessions).
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

// RequestPasswordReset mails a reset link when the account exists. The
// caller receives no signal either way: the response is identical for
// known and unknown addresses to prevent account enumeration.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.IssueResetToken(email, s.secretKey)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"Someone requested a password reset for your DropDesk account.\n\n"+
			"Reset your password here: %s\n\n"+
			"The link expires in %d minutes. If you did not request this, ignore this email.",
		link, int(s.resetTokenMaxAge.Minutes()),
	)

	return s.mailer.Send(ctx, email, "Reset your DropDesk password", body)
}

// ResetPassword redeems a reset token for a new password and revokes
// every session the user holds. All token problems, including the
// account having vanished since issuance, surface as the one merged
// invalid-token error.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	email, err := crypto.VerifyResetToken(token, s.secretKey, s.resetTokenMaxAge)
	if err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return crypto.ErrInvalidResetToken
		}
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	return s.sessions.DeleteByUser(ctx, user.ID)
}

func (s *AuthService) issueSession(ctx context.Context, user *model.User) (model.AuthResponse, error) {
	token, err := newSessionToken()
	if err != nil {
		return model.AuthResponse{}, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  userToResponse(user),
	}, nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func userToResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
