package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairway/fairway-api/internal/domain/catalog"
	"github.com/fairway/fairway-api/internal/middleware"
	"github.com/fairway/fairway-api/internal/pkg/errorhandler"
	"github.com/fairway/fairway-api/internal/pkg/response"
	"github.com/fairway/fairway-api/internal/pkg/validator"
)

// SessionProvider hands out the per-session catalog engine and booking
// flow for a member.
type SessionProvider interface {
	EngineFor(memberKey int64) *catalog.Engine
	FlowFor(memberKey int64) *Flow
}

// Handler handles booking HTTP requests.
type Handler struct {
	service  *Service
	sessions SessionProvider
}

// NewHandler creates a booking handler.
func NewHandler(service *Service, sessions SessionProvider) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// History handles GET /api/v1/bookings
// Returns the member's reservations grouped into the two history tabs and
// refreshes the flow's cached list.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	history, err := h.service.History(r.Context(), memberKey)
	if err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}

	flow := h.sessions.FlowFor(memberKey)
	all := make([]Booking, 0, len(history.Scheduled)+len(history.Cancelled))
	all = append(all, history.Scheduled...)
	all = append(all, history.Cancelled...)
	flow.SetBookings(all)

	response.OK(w, history)
}

// Get handles GET /api/v1/bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())
	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.Get(r.Context(), memberKey, bookingID)
	if err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}
	response.OK(w, booking)
}

// Create handles POST /api/v1/bookings
// Places the reservation with the ERP; on success the flow advances to
// the history view with the confirmation sheet open.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Create(r.Context(), memberKey, req)
	if err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}

	h.sessions.FlowFor(memberKey).ConfirmBooking(result.BookingID)
	response.Created(w, result)
}

// Cancel handles POST /api/v1/bookings/{id}/cancel
// Cancels with the ERP, then flips the flow's cached copy and lands on
// the cancellation-complete screen.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())
	bookingID := chi.URLParam(r, "id")

	var req CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	booking, err := h.service.Cancel(r.Context(), memberKey, bookingID)
	if err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}

	h.sessions.FlowFor(memberKey).CompleteCancellation(bookingID, req.Reason)
	response.OK(w, CancelBookingResponse{Booking: booking, Reason: req.Reason})
}

// FlowState handles GET /api/v1/flow
func (h *Handler) FlowState(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	response.OK(w, flow.State())
}

// SelectCourse handles POST /api/v1/flow/course
// Resolves the course in the session catalog and opens its detail view.
func (h *Handler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	var req SelectCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	course, ok := h.sessions.EngineFor(memberKey).CourseByID(req.CourseID)
	if !ok {
		response.NotFound(w, "Course not found")
		return
	}

	flow := h.sessions.FlowFor(memberKey)
	flow.SelectCourse(course)
	response.OK(w, flow.State())
}

// BackToList handles POST /api/v1/flow/back
func (h *Handler) BackToList(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.BackToList()
	response.OK(w, flow.State())
}

// StartReservation handles POST /api/v1/flow/reservation
// Picks a tee-time slot of the selected course and opens the form.
func (h *Handler) StartReservation(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	var req StartReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.Seq == "" && req.Time == "" {
		response.BadRequest(w, "Either seq or time is required")
		return
	}

	flow := h.sessions.FlowFor(memberKey)
	state := flow.State()
	if state.SelectedCourse == nil {
		response.Conflict(w, ErrInvalidStep.Error())
		return
	}

	slot, ok := findSlot(state.SelectedCourse.Slots, req.Seq, req.Time)
	if !ok {
		response.NotFound(w, "Tee time not found")
		return
	}

	if err := flow.StartReservation(slot); err != nil {
		response.Conflict(w, err.Error())
		return
	}
	response.OK(w, flow.State())
}

// ViewTerms handles POST /api/v1/flow/terms
func (h *Handler) ViewTerms(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	if err := flow.ViewTerms(); err != nil {
		response.Conflict(w, err.Error())
		return
	}
	response.OK(w, flow.State())
}

// BackToReservation handles POST /api/v1/flow/terms/back
func (h *Handler) BackToReservation(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	if err := flow.BackToReservation(); err != nil {
		response.Conflict(w, err.Error())
		return
	}
	response.OK(w, flow.State())
}

// CloseConfirmation handles POST /api/v1/flow/confirmation/close
func (h *Handler) CloseConfirmation(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.CloseBookingConfirmation()
	response.OK(w, flow.State())
}

// ViewHistory handles POST /api/v1/flow/history
func (h *Handler) ViewHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryTabRequest
	if r.Body != nil {
		// Tab is optional; an empty body means the default tab.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.ViewHistory(req.Tab)
	response.OK(w, flow.State())
}

// ViewBookingDetail handles POST /api/v1/flow/history/{id}
func (h *Handler) ViewBookingDetail(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	if err := flow.ViewBookingDetail(chi.URLParam(r, "id")); err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}
	response.OK(w, flow.State())
}

// BackToHistory handles POST /api/v1/flow/history/back
func (h *Handler) BackToHistory(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.BackToHistory()
	response.OK(w, flow.State())
}

// OpenCancelModal handles POST /api/v1/flow/cancel-modal
func (h *Handler) OpenCancelModal(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	if err := flow.OpenCancelModal(); err != nil {
		writeBookingError(r.Context(), w, err)
		return
	}
	response.OK(w, flow.State())
}

// CloseCancelModal handles DELETE /api/v1/flow/cancel-modal
func (h *Handler) CloseCancelModal(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.CloseCancelModal()
	response.OK(w, flow.State())
}

// OpenSearch handles POST /api/v1/flow/search
func (h *Handler) OpenSearch(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.OpenSearch()
	response.OK(w, flow.State())
}

// ViewCancellationHistory handles POST /api/v1/flow/cancellation/history
func (h *Handler) ViewCancellationHistory(w http.ResponseWriter, r *http.Request) {
	flow := h.sessions.FlowFor(middleware.GetMemberKey(r.Context()))
	flow.ViewCancellationHistory()
	response.OK(w, flow.State())
}

func findSlot(slots []catalog.Slot, seq, tm string) (catalog.Slot, bool) {
	for _, s := range slots {
		if seq != "" && s.Seq == seq {
			return s, true
		}
		if seq == "" && tm != "" && s.Time == tm {
			return s, true
		}
	}
	return catalog.Slot{}, false
}

// writeBookingError maps domain and upstream failures onto the response
// envelope.
func writeBookingError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrNotCancellable):
		response.Conflict(w, "Booking can no longer be cancelled")
	case errors.Is(err, ErrNoDraft), errors.Is(err, ErrInvalidStep):
		response.Conflict(w, err.Error())
	default:
		errorhandler.HandleUpstream(ctx, w, err)
	}
}
