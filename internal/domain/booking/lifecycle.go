package booking

import (
	"sync"

	"github.com/fairway/fairway-api/internal/domain/catalog"
)

// View names the screen a member session currently sits on.
type View string

const (
	ViewList                 View = "list"
	ViewSearch               View = "search"
	ViewDetail               View = "detail"
	ViewReservation          View = "reservation"
	ViewTerms                View = "terms"
	ViewHistory              View = "history"
	ViewBookingDetail        View = "bookingDetail"
	ViewCancellationComplete View = "cancellationComplete"
)

// History tabs.
const (
	HistoryTabScheduled = "scheduled"
	HistoryTabCancelled = "cancelled"
)

// Draft is the reservation being assembled before confirmation.
type Draft struct {
	Course catalog.Course `json:"course"`
	Slot   catalog.Slot   `json:"slot"`
	Date   string         `json:"date"`
}

// Flow tracks one member session's position in the booking journey: which
// view is showing, the in-progress draft, the confirmed receipt and the
// cancellation modal state. One flow per session, alongside the catalog
// engine.
type Flow struct {
	mu sync.Mutex

	view View

	selectedCourse   *catalog.Course
	draft            *Draft
	confirmedID      string
	confirmationOpen bool

	bookings        []Booking
	selectedBooking *Booking
	historyTab      string

	cancelModalOpen bool
	cancelReason    string
}

// NewFlow creates a flow positioned on the course list.
func NewFlow() *Flow {
	return &Flow{view: ViewList, historyTab: HistoryTabScheduled}
}

// FlowState is a snapshot of the flow for the state endpoint.
type FlowState struct {
	View             View            `json:"view"`
	SelectedCourse   *catalog.Course `json:"selected_course,omitempty"`
	Draft            *Draft          `json:"draft,omitempty"`
	ConfirmedID      string          `json:"confirmed_booking_id,omitempty"`
	ConfirmationOpen bool            `json:"confirmation_open"`
	SelectedBooking  *Booking        `json:"selected_booking,omitempty"`
	HistoryTab       string          `json:"history_tab"`
	CancelModalOpen  bool            `json:"cancel_modal_open"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
}

// State snapshots the flow.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FlowState{
		View:             f.view,
		SelectedCourse:   f.selectedCourse,
		Draft:            f.draft,
		ConfirmedID:      f.confirmedID,
		ConfirmationOpen: f.confirmationOpen,
		SelectedBooking:  f.selectedBooking,
		HistoryTab:       f.historyTab,
		CancelModalOpen:  f.cancelModalOpen,
		CancelReason:     f.cancelReason,
	}
}

// View returns the current view.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// OpenSearch moves to the search view.
func (f *Flow) OpenSearch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = ViewSearch
}

// SelectCourse opens the detail view for a course.
func (f *Flow) SelectCourse(course catalog.Course) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := course
	f.selectedCourse = &c
	f.view = ViewDetail
}

// BackToList returns to the course list, dropping any selection and
// in-progress draft.
func (f *Flow) BackToList() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = ViewList
	f.selectedCourse = nil
	f.draft = nil
}

// StartReservation begins a draft for a tee-time slot of the selected
// course.
func (f *Flow) StartReservation(slot catalog.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.selectedCourse == nil {
		return ErrInvalidStep
	}

	date := slot.Date
	if date == "" {
		date = f.selectedCourse.Date
	}
	f.draft = &Draft{Course: *f.selectedCourse, Slot: slot, Date: date}
	f.view = ViewReservation
	return nil
}

// Draft returns the in-progress draft.
func (f *Flow) Draft() (Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return Draft{}, ErrNoDraft
	}
	return *f.draft, nil
}

// ViewTerms shows the terms sheet from the reservation form.
func (f *Flow) ViewTerms() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return ErrNoDraft
	}
	f.view = ViewTerms
	return nil
}

// BackToReservation returns from the terms sheet to the form.
func (f *Flow) BackToReservation() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft == nil {
		return ErrNoDraft
	}
	f.view = ViewReservation
	return nil
}

// ConfirmBooking records a successful reservation: the draft clears, the
// confirmation sheet opens over the history view.
func (f *Flow) ConfirmBooking(bookingID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = nil
	f.selectedCourse = nil
	f.confirmedID = bookingID
	f.confirmationOpen = true
	f.view = ViewHistory
	f.historyTab = HistoryTabScheduled
}

// CloseBookingConfirmation dismisses the confirmation sheet.
func (f *Flow) CloseBookingConfirmation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmationOpen = false
	f.confirmedID = ""
}

// SetBookings replaces the cached booking list the flow navigates over.
func (f *Flow) SetBookings(bookings []Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = bookings
}

// Bookings returns the cached booking list.
func (f *Flow) Bookings() []Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Booking, len(f.bookings))
	copy(out, f.bookings)
	return out
}

// ViewHistory moves to the history view on the given tab.
func (f *Flow) ViewHistory(tab string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab != HistoryTabCancelled {
		tab = HistoryTabScheduled
	}
	f.view = ViewHistory
	f.historyTab = tab
	f.selectedBooking = nil
}

// ViewBookingDetail opens a booking from the history list.
func (f *Flow) ViewBookingDetail(bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			b := f.bookings[i]
			f.selectedBooking = &b
			f.view = ViewBookingDetail
			return nil
		}
	}
	return ErrBookingNotFound
}

// BackToHistory returns from the booking detail to the history list.
func (f *Flow) BackToHistory() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedBooking = nil
	f.cancelModalOpen = false
	f.view = ViewHistory
}

// OpenCancelModal opens the cancellation-reason modal for the selected
// booking.
func (f *Flow) OpenCancelModal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectedBooking == nil {
		return ErrInvalidStep
	}
	if !f.selectedBooking.Cancellable() {
		return ErrNotCancellable
	}
	f.cancelModalOpen = true
	return nil
}

// CloseCancelModal dismisses the cancellation-reason modal.
func (f *Flow) CloseCancelModal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelModalOpen = false
}

// CompleteCancellation records a confirmed cancellation: the selected
// booking flips to cancelled in the cached list and the flow lands on the
// completion screen.
func (f *Flow) CompleteCancellation(bookingID, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].Status = StatusCancelled
			if f.selectedBooking != nil && f.selectedBooking.ID == bookingID {
				b := f.bookings[i]
				f.selectedBooking = &b
			}
			break
		}
	}

	f.cancelModalOpen = false
	f.cancelReason = reason
	f.view = ViewCancellationComplete
}

// ViewCancellationHistory leaves the completion screen for the history
// view, landing on the cancelled tab.
func (f *Flow) ViewCancellationHistory() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelReason = ""
	f.selectedBooking = nil
	f.view = ViewHistory
	f.historyTab = HistoryTabCancelled
}
