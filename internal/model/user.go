package model

import "time"

// User represents an account row. PasswordHash never leaves the
// repository/service layers; response DTOs carry no credential fields.
type User struct {
	ID                int64
	Email             string
	PasswordHash      string
	FullName          string
	CreatedAt         time.Time
	PasswordChangedAt time.Time
}

// RegisterRequest represents a signup request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token issued on login or signup.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordResetRequest asks for a reset link to be mailed.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm redeems a reset token for a new password.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
