package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dropdesk/dropdesk-go/internal/repository"
)

const (
	testSecretKey = "test-secret-key"
	testBaseURL   = "http://localhost:3000"
)

// captureMailer records outgoing mail instead of sending it.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedMail
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *captureMailer) last(t *testing.T) capturedMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no mail was sent")
	}
	return m.sent[len(m.sent)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repository.NewDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(db, "sqlite"); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T, db *sql.DB, mail *captureMailer) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		mail,
		testSecretKey,
		time.Hour, // reset token max age
		24*time.Hour,
		testBaseURL,
	)
}
