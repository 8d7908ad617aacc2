package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

// newTestDB opens a throwaway SQLite database in the test's temp dir and
// applies the full schema.
func newTestDB(t *testing.T) *UserRepository {
	t.Helper()
	db, err := NewDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db, "sqlite"); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}

	return NewUserRepository(db)
}

// seedUser inserts a user and returns it with the generated ID set.
func seedUser(t *testing.T, users *UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		FullName:     "Test User",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return user
}

func countRows(t *testing.T, users *UserRepository, table string) int {
	t.Helper()
	var n int
	if err := users.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting rows in %s: %v", table, err)
	}
	return n
}
