package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated principal extracted from a verified
// credential. It carries only what the token proves; the durable user
// record is looked up through the UserRepository.
type Identity struct {
	UserID int64
	Email  string
}

// Author is the public projection of a post's owner. It deliberately
// excludes the email address.
type Author struct {
	ID          int64
	DisplayName string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
