package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the struct.
// Email uniqueness rests on the database constraint, so two concurrent
// signups for the same address cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, password_hash, full_name) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, nullString(user.FullName))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their (normalized) email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, full_name, created_at, password_changed_at
		FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, email, password_hash, full_name, created_at, password_changed_at
		FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// UpdatePassword stores a new password hash and bumps the
// password-changed timestamp.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, password_changed_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// Delete removes a user. Owned rows (sessions, supplier credentials,
// stores, products, orders) are removed by the schema's cascades.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var fullName sql.NullString
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &fullName,
		&user.CreatedAt, &user.PasswordChangedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.FullName = fullName.String
	return user, nil
}

// isUniqueViolation matches the duplicate-key errors of both supported
// drivers: MySQL error 1062 and SQLite constraint code 2067.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func requireRow(result sql.Result, missing error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
