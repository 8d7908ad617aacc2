package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

func newSession(userID int64, id, token string, expiresAt time.Time) *model.Session {
	return &model.Session{
		ID:        id,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
}

func TestSessionCreateAndGet(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, users, "alice@example.com")
	sessions := NewSessionRepository(users.db)

	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	if err := sessions.Create(ctx, newSession(user.ID, "sess-1", "tok-1", expires)); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	got, err := sessions.GetByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("GetByToken() unexpected error: %v", err)
	}
	if got.UserID != user.ID || got.ID != "sess-1" {
		t.Errorf("GetByToken() = %+v, want user_id=%d id=%q", got, user.ID, "sess-1")
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("GetByToken() expires_at = %v, want %v", got.ExpiresAt, expires)
	}
}

func TestSessionGetMissing(t *testing.T) {
	users := newTestDB(t)
	sessions := NewSessionRepository(users.db)

	if _, err := sessions.GetByToken(context.Background(), "no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("GetByToken() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionDeleteIdempotent(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, users, "alice@example.com")
	sessions := NewSessionRepository(users.db)

	if err := sessions.Create(ctx, newSession(user.ID, "sess-1", "tok-1", time.Now().UTC().Add(time.Hour))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := sessions.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := sessions.GetByToken(ctx, "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("GetByToken() after delete error = %v, want ErrSessionNotFound", err)
	}

	// Second delete of the same token is a no-op, not an error.
	if err := sessions.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("Delete() second call unexpected error: %v", err)
	}
}

func TestSessionDeleteByUser(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")
	sessions := NewSessionRepository(users.db)

	expires := time.Now().UTC().Add(time.Hour)
	for i, s := range []*model.Session{
		newSession(alice.ID, "sess-a1", "tok-a1", expires),
		newSession(alice.ID, "sess-a2", "tok-a2", expires),
		newSession(bob.ID, "sess-b1", "tok-b1", expires),
	} {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatalf("Create() #%d unexpected error: %v", i, err)
		}
	}

	if err := sessions.DeleteByUser(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteByUser() unexpected error: %v", err)
	}

	for _, token := range []string{"tok-a1", "tok-a2"} {
		if _, err := sessions.GetByToken(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("GetByToken(%q) error = %v, want ErrSessionNotFound", token, err)
		}
	}
	if _, err := sessions.GetByToken(ctx, "tok-b1"); err != nil {
		t.Errorf("GetByToken(tok-b1) unexpected error: %v", err)
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, users, "alice@example.com")
	sessions := NewSessionRepository(users.db)

	now := time.Now().UTC()
	if err := sessions.Create(ctx, newSession(user.ID, "sess-old", "tok-old", now.Add(-time.Hour))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if err := sessions.Create(ctx, newSession(user.ID, "sess-live", "tok-live", now.Add(time.Hour))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := sessions.DeleteExpired(ctx, now); err != nil {
		t.Fatalf("DeleteExpired() unexpected error: %v", err)
	}

	if _, err := sessions.GetByToken(ctx, "tok-old"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetByToken(tok-old) error = %v, want ErrSessionNotFound", err)
	}
	if _, err := sessions.GetByToken(ctx, "tok-live"); err != nil {
		t.Errorf("GetByToken(tok-live) unexpected error: %v", err)
	}
}
