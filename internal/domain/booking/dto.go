package booking

// CreateBookingRequest carries everything needed to place a reservation
// for a specific tee-time slot.
type CreateBookingRequest struct {
	CourseID     int64  `json:"course_id" validate:"required,min=1"`
	SectionID    string `json:"section_id" validate:"required"`
	Date         string `json:"date" validate:"required,ymd"`
	Time         string `json:"time" validate:"required,booktime"`
	Seq          string `json:"seq" validate:"required"`
	Players      int    `json:"players" validate:"required,gte=1,lte=4"`
	BookerName   string `json:"booker_name" validate:"required,min=2,max=50"`
	BookerPhone  string `json:"booker_phone" validate:"required,krphone"`
	WeekdayDiv   string `json:"weekday_div"`
	AgreedToTerm bool   `json:"agreed_to_terms" validate:"required"`
}

// CreateBookingResponse returns the ERP-assigned reservation number.
type CreateBookingResponse struct {
	BookingID string  `json:"booking_id"`
	Booking   Booking `json:"booking"`
}

// HistoryResponse groups the member's reservations for the two history
// tabs. Cancelled holds status-2 rows; everything else is upcoming.
type HistoryResponse struct {
	Scheduled []Booking `json:"scheduled"`
	Cancelled []Booking `json:"cancelled"`
}

// CancelBookingRequest carries the member-selected cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=200"`
}

// CancelBookingResponse reports the booking after cancellation.
type CancelBookingResponse struct {
	Booking Booking `json:"booking"`
	Reason  string  `json:"reason"`
}

// SelectCourseRequest opens the detail view for a course.
type SelectCourseRequest struct {
	CourseID int64 `json:"course_id" validate:"required,min=1"`
}

// StartReservationRequest picks a tee-time slot of the selected course.
// The slot resolves by sequence number, falling back to tee time.
type StartReservationRequest struct {
	Seq  string `json:"seq"`
	Time string `json:"time"`
}

// HistoryTabRequest switches the history view tab.
type HistoryTabRequest struct {
	Tab string `json:"tab" validate:"omitempty,oneof=scheduled cancelled"`
}
