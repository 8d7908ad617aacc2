package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

func TestUserCreateAndGet(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()

	created := seedUser(t, users, "alice@example.com")
	if created.ID == 0 {
		t.Fatal("Create() did not set the generated ID")
	}

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() unexpected error: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.FullName != "Test User" {
		t.Errorf("GetByEmail() = %+v, want id=%d full_name=%q", byEmail, created.ID, "Test User")
	}

	byID, err := users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("GetByID() email = %q, want %q", byID.Email, "alice@example.com")
	}
}

func TestUserGetMissing(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()

	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
	}
	if _, err := users.GetByID(ctx, 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()

	seedUser(t, users, "alice@example.com")

	dup := &model.User{Email: "alice@example.com", PasswordHash: "x"}
	if err := users.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Create() duplicate error = %v, want ErrDuplicateEmail", err)
	}

	if n := countRows(t, users, "users"); n != 1 {
		t.Errorf("users table has %d rows, want 1", n)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")
	before, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	if err := users.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword() unexpected error: %v", err)
	}

	after, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if after.PasswordHash != "new-hash" {
		t.Errorf("UpdatePassword() hash = %q, want %q", after.PasswordHash, "new-hash")
	}
	if !after.PasswordChangedAt.After(before.PasswordChangedAt) {
		t.Errorf("UpdatePassword() did not advance password_changed_at: before=%v after=%v",
			before.PasswordChangedAt, after.PasswordChangedAt)
	}
}

func TestUserUpdatePasswordMissing(t *testing.T) {
	users := newTestDB(t)
	if err := users.UpdatePassword(context.Background(), 42, "hash"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UpdatePassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	users := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, users, "alice@example.com")

	sessions := NewSessionRepository(users.db)
	now := time.Now().UTC()
	session := &model.Session{ID: "sess-1", UserID: user.ID, Token: "tok-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("sessions.Create() unexpected error: %v", err)
	}

	vault := NewSupplierCredentialRepository(users.db)
	cred := &model.SupplierCredential{UserID: user.ID, SupplierName: "AliExpress"}
	if err := vault.Create(ctx, cred); err != nil {
		t.Fatalf("vault.Create() unexpected error: %v", err)
	}

	catalog := NewCatalogRepository(users.db)
	store := &model.EbayStore{UserID: user.ID, StoreName: "main"}
	if err := catalog.CreateStore(ctx, store); err != nil {
		t.Fatalf("CreateStore() unexpected error: %v", err)
	}
	product := &model.Product{UserID: user.ID, EbayStoreID: store.ID, Title: "widget", Status: "draft"}
	if err := catalog.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct() unexpected error: %v", err)
	}
	order := &model.Order{UserID: user.ID, ProductID: product.ID, EbayOrderID: "EB-1", Status: "detected"}
	if err := catalog.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder() unexpected error: %v", err)
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	for _, table := range []string{"users", "sessions", "supplier_credentials", "ebay_stores", "products", "orders"} {
		if n := countRows(t, users, table); n != 0 {
			t.Errorf("%s table has %d rows after user delete, want 0", table, n)
		}
	}
}

func TestUserDeleteMissing(t *testing.T) {
	users := newTestDB(t)
	if err := users.Delete(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Delete() error = %v, want ErrUserNotFound", err)
	}
}
