package router

import (
	"net/http"

	"github.com/postline/postline-auth/internal/api/http/handler"
	"github.com/postline/postline-auth/internal/api/http/middleware"
	"github.com/postline/postline-auth/internal/logger"
)

// Router assembles the HTTP API: auth endpoints, the authorization gate
// and request logging.
type Router struct {
	auth         *handler.Auth
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
	logger       *logger.Logger
}

func New(auth *handler.Auth, authenticate *middleware.Authenticate, logging *middleware.Logging, logger *logger.Logger) *Router {
	return &Router{
		auth:         auth,
		authenticate: authenticate,
		logging:      logging,
		logger:       logger,
	}
}

// Register returns the root handler with all routes mounted.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", r.auth.Register)
	mux.HandleFunc("POST /auth/login", r.auth.Login)
	mux.HandleFunc("POST /auth/google", r.auth.LoginGoogle)
	mux.HandleFunc("POST /auth/refresh", r.auth.Refresh)
	mux.HandleFunc("POST /auth/logout", r.auth.Logout)
	mux.Handle("GET /auth/session", r.Protect(http.HandlerFunc(r.auth.Session)))

	mux.HandleFunc("GET /isAlive", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("alive"))
	})

	return r.logging.Handler(mux)
}

// Protect wraps a downstream handler with the authorization gate. The rest
// of the application mounts its handlers through this.
func (r *Router) Protect(next http.Handler) http.Handler {
	return r.authenticate.Handler(next)
}
