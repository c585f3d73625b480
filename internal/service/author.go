package service

import (
	"context"
	"fmt"

	"github.com/mkalanick/postboard/internal/domain"
)

// AuthorResolver expands a post's owner reference into its public
// projection. It is a pure read: no authorization, no side effects, and
// the email address never appears in the projection.
type AuthorResolver struct {
	users domain.UserRepository
}

// NewAuthorResolver creates a new AuthorResolver.
func NewAuthorResolver(users domain.UserRepository) *AuthorResolver {
	return &AuthorResolver{users: users}
}

// Resolve populates the Author field of a single post.
func (r *AuthorResolver) Resolve(ctx context.Context, post *domain.Post) error {
	user, err := r.users.GetByID(ctx, post.UserID)
	if err != nil {
		return fmt.Errorf("resolve author of post %d: %w", post.ID, err)
	}
	post.Author = &domain.Author{ID: user.ID, DisplayName: user.DisplayName}
	return nil
}

// ResolveAll populates the Author field of every post in the slice,
// loading each distinct owner once.
func (r *AuthorResolver) ResolveAll(ctx context.Context, posts []domain.Post) error {
	authors := make(map[int64]*domain.Author)
	for i := range posts {
		author, ok := authors[posts[i].UserID]
		if !ok {
			user, err := r.users.GetByID(ctx, posts[i].UserID)
			if err != nil {
				return fmt.Errorf("resolve author of post %d: %w", posts[i].ID, err)
			}
			author = &domain.Author{ID: user.ID, DisplayName: user.DisplayName}
			authors[user.ID] = author
		}
		posts[i].Author = author
	}
	return nil
}
