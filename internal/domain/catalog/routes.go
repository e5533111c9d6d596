package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers catalog routes. All routes require a session token.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.ListCourses)
	r.Get("/page", h.GetPage)
	r.Post("/more", h.LoadMore)
	r.Get("/months", h.Months)

	r.Put("/filters", h.ApplyFilters)
	r.Delete("/filters", h.ResetFilters)
	r.Get("/filters/options", h.FilterOptions)

	r.Put("/sort", h.ApplySort)
	r.Delete("/sort", h.ResetSort)

	r.Get("/search", h.Search)
	r.Post("/search/select", h.SelectSearchResult)
	r.Delete("/search/recent", h.RemoveRecentSearch)

	r.Get("/{id}/times", h.CourseTimes)
	r.Post("/{id}/toggle", h.ToggleCourse)

	return r
}
