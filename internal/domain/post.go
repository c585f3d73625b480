package domain

import (
	"context"
	"time"
)

// Post is a short text entry owned by exactly one user. The owner
// reference is set at creation and never changes.
type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Author    *Author // populated by the author resolver, not persisted
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostRepository defines persistence operations for posts.
//
// All listing methods return posts ordered by creation time descending
// with the post ID as tie-break, except Search, which returns results
// in the store's relevance order.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListPage(ctx context.Context, limit, offset int) ([]Post, error)
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
