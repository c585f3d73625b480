package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkalanick/postboard/internal/domain"
	"github.com/mkalanick/postboard/internal/repository/sqlite"
)

func seedUser(t *testing.T, db *sqlite.DB, email string) int64 {
	t.Helper()
	u := &domain.User{Email: email, DisplayName: "Test", PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func seedPost(t *testing.T, db *sqlite.DB, userID int64, title, content string) *domain.Post {
	t.Helper()
	p := &domain.Post{UserID: userID, Title: title, Content: content}
	if err := db.Posts().Create(context.Background(), p); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func TestPostRepository_Create(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "author@example.com")
	post := &domain.Post{UserID: userID, Title: "Hello", Content: "World"}

	if err := db.Posts().Create(ctx, post); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post ID to be set")
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := db.Posts().GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Hello" || got.Content != "World" {
		t.Fatalf("unexpected post fields: %+v", got)
	}
	if got.UserID != userID {
		t.Fatalf("expected owner %d, got %d", userID, got.UserID)
	}
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Posts().GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_ListPage_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "feed@example.com")
	for i := 0; i < 5; i++ {
		seedPost(t, db, userID, "Post", "Content")
	}

	posts, err := db.Posts().ListPage(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}

	// Newest first; the id tie-break keeps the order total even when
	// posts share a creation timestamp.
	for i := 1; i < len(posts); i++ {
		if posts[i].ID > posts[i-1].ID {
			t.Fatalf("posts out of order: id %d after id %d", posts[i].ID, posts[i-1].ID)
		}
	}
}

func TestPostRepository_ListPage_NoOverlapAcrossPages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "pages@example.com")
	for i := 0; i < 7; i++ {
		seedPost(t, db, userID, "Post", "Content")
	}

	seen := make(map[int64]bool)
	for offset := 0; offset < 9; offset += 3 {
		page, err := db.Posts().ListPage(ctx, 3, offset)
		if err != nil {
			t.Fatalf("ListPage offset %d: %v", offset, err)
		}
		for _, p := range page {
			if seen[p.ID] {
				t.Fatalf("post %d returned on more than one page", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 distinct posts across pages, got %d", len(seen))
	}
}

func TestPostRepository_ListPage_PastEndIsEmpty(t *testing.T) {
	db := newTestDB(t)

	posts, err := db.Posts().ListPage(context.Background(), 10, 100)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty page, got %d posts", len(posts))
	}
}

func TestPostRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "mine@example.com")
	u2 := seedUser(t, db, "theirs@example.com")
	seedPost(t, db, u1, "Mine 1", "Content")
	seedPost(t, db, u2, "Theirs", "Content")
	seedPost(t, db, u1, "Mine 2", "Content")

	posts, err := db.Posts().ListByUser(ctx, u1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	for _, p := range posts {
		if p.UserID != u1 {
			t.Fatalf("post %d belongs to user %d, not %d", p.ID, p.UserID, u1)
		}
	}
	// Newest first.
	if posts[0].Title != "Mine 2" {
		t.Fatalf("expected newest post first, got %q", posts[0].Title)
	}
}

func TestPostRepository_Count(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	count, err := db.Posts().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	userID := seedUser(t, db, "count@example.com")
	seedPost(t, db, userID, "One", "Content")
	seedPost(t, db, userID, "Two", "Content")

	count, err = db.Posts().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestPostRepository_Search(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "search@example.com")
	hit := seedPost(t, db, userID, "Gophers at sea", "A tale of maritime rodents")
	seedPost(t, db, userID, "Unrelated", "Nothing to see here")

	posts, err := db.Posts().Search(ctx, "gophers")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != hit.ID {
		t.Fatalf("expected post %d, got %+v", hit.ID, posts)
	}

	// Content matches too.
	posts, err = db.Posts().Search(ctx, "maritime")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != hit.ID {
		t.Fatalf("expected post %d by content match, got %+v", hit.ID, posts)
	}

	posts, err = db.Posts().Search(ctx, "nonexistent-token-xyz")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no matches, got %d", len(posts))
	}
}

func TestPostRepository_Search_QuotesUserInput(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// FTS5 operators and stray quotes must not be parsed as syntax.
	for _, q := range []string{`AND OR NOT`, `"broken`, `title:*`, `(`} {
		if _, err := db.Posts().Search(ctx, q); err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
	}
}

func TestPostRepository_Search_EmptyQuery(t *testing.T) {
	db := newTestDB(t)

	posts, err := db.Posts().Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if posts != nil {
		t.Fatalf("expected nil result for blank query, got %+v", posts)
	}
}

func TestPostRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "update@example.com")
	post := seedPost(t, db, userID, "Before", "Old content")

	post.Title = "After"
	post.Content = "New content"
	if err := db.Posts().Update(ctx, post); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Posts().GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "After" || got.Content != "New content" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UserID != userID {
		t.Fatalf("owner changed on update: %d", got.UserID)
	}

	// The FTS index follows the update.
	posts, err := db.Posts().Search(ctx, "before")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 0 {
		t.Fatal("expected old title to be gone from the search index")
	}
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Posts().Update(context.Background(), &domain.Post{ID: 99999, Title: "X", Content: "Y"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "delete@example.com")
	post := seedPost(t, db, userID, "Doomed", "Content")

	if err := db.Posts().Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Posts().GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := db.Posts().Delete(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
