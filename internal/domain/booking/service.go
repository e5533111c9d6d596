package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairway/fairway-api/internal/pkg/erp"
)

// ERPClient is the slice of the ERP booking client the booking domain
// needs.
type ERPClient interface {
	MyReservations(ctx context.Context, userID int64) ([]erp.BookingDTO, error)
	CreateBooking(ctx context.Context, p erp.CreateBookingPayload) (string, error)
	CancelBooking(ctx context.Context, bookNo string, memberKey int64) error
}

// Service proxies the booking lifecycle to the ERP. The ERP is the
// system of record; after every mutation the list is refetched rather
// than patched locally.
type Service struct {
	client ERPClient
}

// NewService creates a booking service.
func NewService(client ERPClient) *Service {
	return &Service{client: client}
}

// History fetches the member's reservations grouped for the two history
// tabs. Cancelled rows (status 2) go to the cancelled tab, everything
// else including completed rounds stays with the upcoming tab.
func (s *Service) History(ctx context.Context, memberKey int64) (HistoryResponse, error) {
	bookings, err := s.List(ctx, memberKey)
	if err != nil {
		return HistoryResponse{}, err
	}

	history := HistoryResponse{
		Scheduled: []Booking{},
		Cancelled: []Booking{},
	}
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			history.Cancelled = append(history.Cancelled, b)
		} else {
			history.Scheduled = append(history.Scheduled, b)
		}
	}
	return history, nil
}

// List fetches and maps the member's reservations.
func (s *Service) List(ctx context.Context, memberKey int64) ([]Booking, error) {
	dtos, err := s.client.MyReservations(ctx, memberKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	bookings := make([]Booking, len(dtos))
	for i, dto := range dtos {
		bookings[i] = MapBooking(dto)
	}
	return bookings, nil
}

// Get fetches a single reservation by booking number.
func (s *Service) Get(ctx context.Context, memberKey int64, bookingID string) (Booking, error) {
	bookings, err := s.List(ctx, memberKey)
	if err != nil {
		return Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return Booking{}, ErrBookingNotFound
}

// Create places a reservation and returns it as the ERP now records it.
// When the refetch cannot locate the new row yet, a provisional booking
// built from the request is returned instead.
func (s *Service) Create(ctx context.Context, memberKey int64, req CreateBookingRequest) (CreateBookingResponse, error) {
	payload := erp.CreateBookingPayload{
		MbrKey:       memberKey,
		GolfPlcNo:    req.CourseID,
		BookCoursNo:  req.SectionID,
		BookDt:       req.Date,
		TimeSeq:      req.Seq,
		BookTm:       strings.ReplaceAll(req.Time, ":", ""),
		RsrvPsnn:     req.Players,
		CpRsrvrName:  req.BookerName,
		CpRsrvrPhone: req.BookerPhone,
		WkdayWkendDv: req.WeekdayDiv,
	}

	bookingID, err := s.client.CreateBooking(ctx, payload)
	if err != nil {
		return CreateBookingResponse{}, fmt.Errorf("failed to create booking: %w", err)
	}

	booking, err := s.Get(ctx, memberKey, bookingID)
	if err != nil {
		booking = Booking{
			ID:          bookingID,
			Status:      StatusScheduled,
			CourseID:    req.CourseID,
			Date:        req.Date,
			Time:        req.Time,
			Players:     req.Players,
			BookerName:  req.BookerName,
			BookerPhone: req.BookerPhone,
		}
	}

	return CreateBookingResponse{BookingID: bookingID, Booking: booking}, nil
}

// Cancel cancels a reservation and returns it as the ERP now records it.
// Already-cancelled and completed bookings are rejected before the ERP
// call.
func (s *Service) Cancel(ctx context.Context, memberKey int64, bookingID string) (Booking, error) {
	booking, err := s.Get(ctx, memberKey, bookingID)
	if err != nil {
		return Booking{}, err
	}
	if !booking.Cancellable() {
		return Booking{}, ErrNotCancellable
	}

	if err := s.client.CancelBooking(ctx, bookingID, memberKey); err != nil {
		return Booking{}, fmt.Errorf("failed to cancel booking: %w", err)
	}

	updated, err := s.Get(ctx, memberKey, bookingID)
	if err != nil {
		// The ERP accepted the cancel; reflect it locally even if the
		// refetch lags behind.
		booking.Status = StatusCancelled
		return booking, nil
	}
	return updated, nil
}
