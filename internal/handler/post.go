package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkalanick/postboard/internal/domain"
	"github.com/mkalanick/postboard/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleList returns one page of the public feed.
// GET /api/posts?page=N
// Response: {"posts": [...], "page": N}
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	posts, err := h.posts.ListAll(r.Context(), page)
	if err != nil {
		writeServiceError(w, "list posts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": toPostDTOs(posts),
		"page":  page,
	})
}

// HandleCount returns the total post count for pagination UI. The count is
// approximate under concurrent writes.
// GET /api/posts/count
// Response: {"total": N}
func (h *PostHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.posts.Count(r.Context())
	if err != nil {
		writeServiceError(w, "count posts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"total": total})
}

// HandleMine returns all posts owned by the authenticated caller.
// GET /api/posts/mine
// Response: {"posts": [...]}
func (h *PostHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	posts, err := h.posts.ListByAuthor(r.Context(), identity)
	if err != nil {
		writeServiceError(w, "list own posts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": toPostDTOs(posts),
	})
}

// HandleSearch runs a full-text search over posts. Results are in the
// store's relevance order, not creation order.
// GET /api/posts/search?q=...
// Response: {"posts": [...]}
func (h *PostHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "search posts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": toSearchResultDTOs(posts),
	})
}

// HandleGet returns a single post.
// GET /api/posts/{id}
// Response: {"post": {...}} or 404
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"post": toPostDTO(post)})
}

// HandleCreate creates a post owned by the authenticated caller.
// POST /api/posts
// Request:  {"title":"...","content":"..."}
// Response: {"post": {...}}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Create(r.Context(), identity, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"post": toPostDTO(post)})
}

// HandleUpdate replaces the title and content of a post owned by the caller.
// PUT /api/posts/{id}
// Request:  {"title":"...","content":"..."}
// Response: {"post": {...}}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Update(r.Context(), identity, id, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, "update post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"post": toPostDTO(post)})
}

// HandleDelete removes a post owned by the caller and returns its last
// known state.
// DELETE /api/posts/{id}
// Response: {"post": {...}}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	post, err := h.posts.Delete(r.Context(), identity, id)
	if err != nil {
		writeServiceError(w, "delete post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"post": toPostDTO(post)})
}

// writeServiceError maps domain error kinds to HTTP status codes.
// Unexpected errors are logged and surfaced as 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "You do not own this post.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Post not found.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
