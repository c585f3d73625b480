package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkalanick/postboard/internal/domain"
)

// DefaultPageSize is the fixed window size for the global feed.
const DefaultPageSize = 10

// PostService implements post management: the public feed, per-user
// listing, full-text search, and owner-gated mutations.
//
// Every mutating operation resolves the caller's directory record first
// and checks ownership against the target post before writing. There is
// no compare-and-swap between the ownership check and the write, so two
// concurrent mutations of the same post can interleave; the last write
// wins.
type PostService struct {
	posts   domain.PostRepository
	users   domain.UserRepository
	authors *AuthorResolver
	perPage int
}

// NewPostService creates a new PostService. perPage fixes the feed window
// size; non-positive values fall back to DefaultPageSize.
func NewPostService(posts domain.PostRepository, users domain.UserRepository, authors *AuthorResolver, perPage int) *PostService {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return &PostService{posts: posts, users: users, authors: authors, perPage: perPage}
}

// ListAll returns one page of the global feed, newest first, with authors
// expanded. Pages are 1-based; non-positive pages read as page 1, and a
// page past the end of the data is an empty result, not an error.
func (s *PostService) ListAll(ctx context.Context, page int) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}

	posts, err := s.posts.ListPage(ctx, s.perPage, (page-1)*s.perPage)
	if err != nil {
		return nil, err
	}
	if err := s.authors.ResolveAll(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts. The count is not transactional
// with any page fetch, so it is approximate under concurrent writes.
func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.posts.Count(ctx)
}

// ListByAuthor returns all posts owned by the caller, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, caller domain.Identity) ([]domain.Post, error) {
	user, err := s.resolveCaller(ctx, caller)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authors.ResolveAll(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns a single post with its author expanded, or ErrNotFound.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authors.Resolve(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Search runs a full-text match over titles and contents. Results come
// back in the store's relevance order. A blank query returns nothing.
func (s *PostService) Search(ctx context.Context, query string) ([]domain.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	posts, err := s.posts.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := s.authors.ResolveAll(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Create stores a new post owned by the caller and returns it with the
// author expanded. Validation runs before any store access.
func (s *PostService) Create(ctx context.Context, caller domain.Identity, title, content string) (*domain.Post, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	user, err := s.resolveCaller(ctx, caller)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID:  user.ID,
		Title:   title,
		Content: content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	post.Author = &domain.Author{ID: user.ID, DisplayName: user.DisplayName}
	return post, nil
}

// Update replaces the title and content of a post owned by the caller.
// The owner reference and creation time never change. A caller who is not
// the owner gets ErrUnauthorized and the post is left untouched.
func (s *PostService) Update(ctx context.Context, caller domain.Identity, id int64, title, content string) (*domain.Post, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	user, err := s.resolveCaller(ctx, caller)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != user.ID {
		return nil, domain.ErrUnauthorized
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	if err := s.authors.Resolve(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by the caller and returns its last known
// state so clients can evict it from caches.
func (s *PostService) Delete(ctx context.Context, caller domain.Identity, id int64) (*domain.Post, error) {
	user, err := s.resolveCaller(ctx, caller)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != user.ID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}

	if err := s.authors.Resolve(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// resolveCaller maps an authenticated identity to its durable directory
// record. A missing identity or directory record fails closed.
func (s *PostService) resolveCaller(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	if caller.Email == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.GetByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return user, nil
}

func validatePostInput(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	return nil
}
