package handler

import (
	"net/http"

	"github.com/mkalanick/postboard/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, posts *service.PostService, loginLimiter *service.TokenBucket) {
	authHandler := NewAuthHandler(auth, loginLimiter)
	postHandler := NewPostHandler(posts)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	// Literal segments win over {id}, so count/mine/search stay reachable.
	mux.HandleFunc("GET /api/posts", postHandler.HandleList)
	mux.HandleFunc("GET /api/posts/count", postHandler.HandleCount)
	mux.Handle("GET /api/posts/mine", RequireAuth(auth, http.HandlerFunc(postHandler.HandleMine)))
	mux.HandleFunc("GET /api/posts/search", postHandler.HandleSearch)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.HandleGet)
	mux.Handle("POST /api/posts", RequireAuth(auth, http.HandlerFunc(postHandler.HandleCreate)))
	mux.Handle("PUT /api/posts/{id}", RequireAuth(auth, http.HandlerFunc(postHandler.HandleUpdate)))
	mux.Handle("DELETE /api/posts/{id}", RequireAuth(auth, http.HandlerFunc(postHandler.HandleDelete)))
}
