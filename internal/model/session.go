package model

import "time"

// Session is a server-held association between a bearer token and an
// authenticated user. Created on login, removed on logout, ignored once
// ExpiresAt has passed.
type Session struct {
	ID        string
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}
