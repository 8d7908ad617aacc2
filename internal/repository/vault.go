package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

var ErrCredentialNotFound = errors.New("supplier credential not found")

// SupplierCredentialRepository handles vault entry persistence. Every
// query is scoped by user_id, so one user's entries are unreachable
// through another user's calls.
type SupplierCredentialRepository struct {
	db *sql.DB
}

// NewSupplierCredentialRepository creates a new SupplierCredentialRepository.
func NewSupplierCredentialRepository(db *sql.DB) *SupplierCredentialRepository {
	return &SupplierCredentialRepository{db: db}
}

// Create inserts a vault entry and sets the generated ID on the struct.
func (r *SupplierCredentialRepository) Create(ctx context.Context, cred *model.SupplierCredential) error {
	query := `INSERT INTO supplier_credentials (user_id, supplier_name, username, encrypted_secret)
		VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		cred.UserID, cred.SupplierName, nullString(cred.Username), cred.EncryptedSecret,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	cred.ID = id
	return nil
}

// GetByID retrieves a vault entry owned by the given user.
func (r *SupplierCredentialRepository) GetByID(ctx context.Context, userID, id int64) (*model.SupplierCredential, error) {
	query := `SELECT id, user_id, supplier_name, username, encrypted_secret, created_at
		FROM supplier_credentials WHERE user_id = ? AND id = ?`

	cred := &model.SupplierCredential{}
	var username sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&cred.ID, &cred.UserID, &cred.SupplierName, &username, &cred.EncryptedSecret, &cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	cred.Username = username.String

	return cred, nil
}

// ListByUser retrieves all vault entries for a user, newest first.
func (r *SupplierCredentialRepository) ListByUser(ctx context.Context, userID int64) ([]model.SupplierCredential, error) {
	query := `SELECT id, user_id, supplier_name, username, encrypted_secret, created_at
		FROM supplier_credentials WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []model.SupplierCredential
	for rows.Next() {
		var c model.SupplierCredential
		var username sql.NullString
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.SupplierName, &username, &c.EncryptedSecret, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.Username = username.String
		creds = append(creds, c)
	}

	return creds, rows.Err()
}

// UpdateSecret overwrites the stored ciphertext for an entry. No history
// is kept.
func (r *SupplierCredentialRepository) UpdateSecret(ctx context.Context, userID, id int64, ciphertext string) error {
	query := `UPDATE supplier_credentials SET encrypted_secret = ? WHERE user_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, ciphertext, userID, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrCredentialNotFound)
}

// Delete removes a vault entry owned by the given user.
func (r *SupplierCredentialRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM supplier_credentials WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrCredentialNotFound)
}
