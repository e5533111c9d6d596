package booking

import (
	"errors"
	"testing"

	"github.com/fairway/fairway-api/internal/domain/catalog"
)

func testCourse() catalog.Course {
	return catalog.Course{
		ID:   101,
		Name: "휘슬링락",
		Date: "20260905",
		Slots: []catalog.Slot{
			{Time: "0730", Seq: "3", SaleFee: 85000},
		},
	}
}

func TestFlowStartsOnList(t *testing.T) {
	f := NewFlow()
	state := f.State()
	if state.View != ViewList {
		t.Fatalf("expected list view, got %q", state.View)
	}
	if state.HistoryTab != HistoryTabScheduled {
		t.Fatalf("expected scheduled tab, got %q", state.HistoryTab)
	}
}

func TestFlowReservationJourney(t *testing.T) {
	f := NewFlow()

	f.SelectCourse(testCourse())
	if f.State().View != ViewDetail {
		t.Fatal("expected detail view after course selection")
	}

	if err := f.StartReservation(testCourse().Slots[0]); err != nil {
		t.Fatalf("expected draft to start, got %v", err)
	}
	state := f.State()
	if state.View != ViewReservation {
		t.Fatal("expected reservation view")
	}
	if state.Draft == nil || state.Draft.Date != "20260905" {
		t.Fatalf("expected draft date from slot/course, got %+v", state.Draft)
	}

	if err := f.ViewTerms(); err != nil {
		t.Fatalf("expected terms view, got %v", err)
	}
	if err := f.BackToReservation(); err != nil {
		t.Fatalf("expected return to form, got %v", err)
	}

	f.ConfirmBooking("99")
	state = f.State()
	if state.View != ViewHistory {
		t.Fatal("expected history view after confirmation")
	}
	if !state.ConfirmationOpen || state.ConfirmedID != "99" {
		t.Fatalf("expected open confirmation for 99, got %+v", state)
	}
	if state.Draft != nil || state.SelectedCourse != nil {
		t.Fatal("expected draft and selection cleared")
	}

	f.CloseBookingConfirmation()
	state = f.State()
	if state.ConfirmationOpen || state.ConfirmedID != "" {
		t.Fatal("expected confirmation dismissed")
	}
}

func TestFlowStartReservationRequiresSelection(t *testing.T) {
	f := NewFlow()
	if err := f.StartReservation(catalog.Slot{Time: "0730"}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

func TestFlowTermsRequireDraft(t *testing.T) {
	f := NewFlow()
	if err := f.ViewTerms(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if err := f.BackToReservation(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestFlowBackToListDropsDraft(t *testing.T) {
	f := NewFlow()
	f.SelectCourse(testCourse())
	if err := f.StartReservation(testCourse().Slots[0]); err != nil {
		t.Fatal(err)
	}

	f.BackToList()
	if _, err := f.Draft(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected draft dropped, got %v", err)
	}
}

func TestFlowBookingDetailNavigation(t *testing.T) {
	f := NewFlow()
	f.SetBookings([]Booking{
		{ID: "1", Status: StatusScheduled},
		{ID: "2", Status: StatusCancelled},
	})

	if err := f.ViewBookingDetail("404"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	if err := f.ViewBookingDetail("1"); err != nil {
		t.Fatalf("expected detail view, got %v", err)
	}
	state := f.State()
	if state.View != ViewBookingDetail || state.SelectedBooking == nil || state.SelectedBooking.ID != "1" {
		t.Fatalf("unexpected state: %+v", state)
	}

	f.BackToHistory()
	state = f.State()
	if state.View != ViewHistory || state.SelectedBooking != nil {
		t.Fatal("expected return to history with selection cleared")
	}
}

func TestFlowCancellationJourney(t *testing.T) {
	f := NewFlow()
	f.SetBookings([]Booking{{ID: "1", Status: StatusScheduled}})

	if err := f.ViewBookingDetail("1"); err != nil {
		t.Fatal(err)
	}
	if err := f.OpenCancelModal(); err != nil {
		t.Fatalf("expected modal to open, got %v", err)
	}
	if !f.State().CancelModalOpen {
		t.Fatal("expected open modal")
	}

	f.CompleteCancellation("1", "일정 변경")
	state := f.State()
	if state.View != ViewCancellationComplete {
		t.Fatalf("expected completion view, got %q", state.View)
	}
	if state.CancelModalOpen {
		t.Fatal("expected modal closed")
	}
	if state.CancelReason != "일정 변경" {
		t.Fatalf("expected reason recorded, got %q", state.CancelReason)
	}
	if state.SelectedBooking == nil || state.SelectedBooking.Status != StatusCancelled {
		t.Fatal("expected cached booking flipped to cancelled")
	}

	f.ViewCancellationHistory()
	state = f.State()
	if state.View != ViewHistory || state.HistoryTab != HistoryTabCancelled {
		t.Fatalf("expected cancelled history tab, got %+v", state)
	}
	if state.CancelReason != "" || state.SelectedBooking != nil {
		t.Fatal("expected completion state cleared")
	}

	// The cached list reflects the cancellation.
	bookings := f.Bookings()
	if len(bookings) != 1 || bookings[0].Status != StatusCancelled {
		t.Fatalf("expected cancelled row in cache, got %+v", bookings)
	}
}

func TestFlowCancelModalRequiresCancellableBooking(t *testing.T) {
	f := NewFlow()

	if err := f.OpenCancelModal(); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep without selection, got %v", err)
	}

	f.SetBookings([]Booking{{ID: "1", Status: StatusCancelled}})
	if err := f.ViewBookingDetail("1"); err != nil {
		t.Fatal(err)
	}
	if err := f.OpenCancelModal(); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
}

func TestFlowHistoryTabNormalized(t *testing.T) {
	f := NewFlow()
	f.ViewHistory("bogus")
	if got := f.State().HistoryTab; got != HistoryTabScheduled {
		t.Fatalf("expected fallback to scheduled, got %q", got)
	}
	f.ViewHistory(HistoryTabCancelled)
	if got := f.State().HistoryTab; got != HistoryTabCancelled {
		t.Fatalf("expected cancelled tab, got %q", got)
	}
}
