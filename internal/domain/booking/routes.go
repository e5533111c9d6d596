package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers booking routes. All routes require a session token.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.History)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}

// FlowRoutes registers the booking-journey navigation routes.
func (h *Handler) FlowRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.FlowState)
	r.Post("/course", h.SelectCourse)
	r.Post("/back", h.BackToList)
	r.Post("/reservation", h.StartReservation)
	r.Post("/terms", h.ViewTerms)
	r.Post("/terms/back", h.BackToReservation)
	r.Post("/confirmation/close", h.CloseConfirmation)
	r.Post("/history", h.ViewHistory)
	r.Post("/history/back", h.BackToHistory)
	r.Post("/history/{id}", h.ViewBookingDetail)
	r.Post("/cancel-modal", h.OpenCancelModal)
	r.Delete("/cancel-modal", h.CloseCancelModal)
	r.Post("/search", h.OpenSearch)
	r.Post("/cancellation/history", h.ViewCancellationHistory)

	return r
}
