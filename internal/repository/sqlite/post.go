package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkalanick/postboard/internal/domain"
)

const postColumns = "id, user_id, title, content, created_at, updated_at"

// PostRepository implements domain.PostRepository using SQLite.
// Full-text search is served by the posts_fts FTS5 table, which triggers
// keep in sync with the posts table.
type PostRepository struct {
	db *sql.DB
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		post.UserID, post.Title, post.Content, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p := &domain.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query post by id: %w", err)
	}
	return p, nil
}

// ListPage returns one window of the global feed, newest first. The id
// tie-break makes the order total even when posts share a timestamp.
func (r *PostRepository) ListPage(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts page: %w", err)
	}
	return scanPosts(rows)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	return scanPosts(rows)
}

// Count returns the total number of posts. It runs outside any transaction
// tying it to a page fetch, so the value may drift under concurrent writes.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Search runs a full-text match over titles and contents. Results come back
// in FTS5 relevance order, not creation order. A query with no usable tokens
// matches nothing.
func (r *PostRepository) Search(ctx context.Context, query string) ([]domain.Post, error) {
	match := ftsMatchExpr(query)
	if match == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at
		 FROM posts_fts f JOIN posts p ON p.id = f.rowid
		 WHERE posts_fts MATCH ? ORDER BY f.rank`, match)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return scanPosts(rows)
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		post.Title, post.Content, now, post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	post.UpdatedAt = now
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ftsMatchExpr converts raw user input into a safe FTS5 MATCH expression.
// Each token is quoted so user input can never be parsed as FTS5 syntax.
func ftsMatchExpr(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}
