package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists login sessions. A session row existing and
// being unexpired is the proof of prior authentication; deleting the row
// is logout.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO sessions (id, user_id, token, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Token, session.CreatedAt, session.ExpiresAt,
	)
	return err
}

// GetByToken retrieves a session by its bearer token. Expiry is checked
// by the caller; timestamps are compared in Go to stay portable across
// drivers.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	query := `SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = ?`

	session := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

// Delete removes a session by token. Deleting an absent session is not
// an error; logout is idempotent.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteByUser revokes every session for a user, e.g. after a password
// reset.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

// DeleteExpired sweeps sessions that expired before the given time.
func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, before)
	return err
}
