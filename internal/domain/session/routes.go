package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers auth routes. Login is public; the rest require a
// session token.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
		r.Delete("/session", h.Logout)
	})

	return r
}
