package booking

import (
	"strconv"

	"github.com/fairway/fairway-api/internal/pkg/dateutil"
	"github.com/fairway/fairway-api/internal/pkg/erp"
)

// Booking status codes as the ERP reports them.
const (
	StatusScheduled = 1
	StatusCancelled = 2
	StatusCompleted = 3
)

// Booking is one reservation as shown to the member, with ERP fields
// already rendered into display form.
type Booking struct {
	ID                   string `json:"id"`
	Status               int    `json:"status"`
	CourseID             int64  `json:"course_id"`
	CourseName           string `json:"course_name"`
	CourseLayout         string `json:"course_layout"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	DateTimeLabel        string `json:"date_time_label"`
	Players              int    `json:"players"`
	GreenFee             int64  `json:"green_fee"`
	NormalFee            int64  `json:"normal_fee"`
	CancellationDeadline string `json:"cancellation_deadline"`
	BookerName           string `json:"booker_name"`
	BookerPhone          string `json:"booker_phone"`
	BookedAt             string `json:"booked_at"`
	CancelledAt          string `json:"cancelled_at"`
}

// MapBooking converts an ERP reservation row into a Booking. The
// cancellation deadline derives from the course's DDHHmm rule against the
// play date; a missing or malformed rule leaves it empty.
func MapBooking(dto erp.BookingDTO) Booking {
	cancelledAt := dto.CnclDttm
	if cancelledAt == "" {
		cancelledAt = dto.CanceledAt
	}

	return Booking{
		ID:                   strconv.FormatInt(dto.BookNo, 10),
		Status:               dto.BookStatCd,
		CourseID:             dto.GolfPlcNo,
		CourseName:           dto.GolfPlcNm,
		CourseLayout:         dto.BookCoursNm,
		Date:                 dto.BookDt,
		Time:                 dateutil.FormatTime(dto.BookTm),
		DateTimeLabel:        dateutil.FormatFullDateTimeWithDay(dto.BookDt, dto.BookTm),
		Players:              dto.RsrvPsnn,
		GreenFee:             dateutil.ToNumber(dto.SaleFee.String()),
		NormalFee:            dateutil.ToNumber(dto.NormalFee.String()),
		CancellationDeadline: dateutil.CancellationDeadline(dto.BookDt, dto.RsrvCnclRuleDt),
		BookerName:           dto.RsrvrNm,
		BookerPhone:          dto.RsrvrMobile,
		BookedAt:             dto.RsrvDttm,
		CancelledAt:          cancelledAt,
	}
}

// Cancellable reports whether the booking can still be cancelled. Only
// scheduled bookings are; completed and already-cancelled ones are not.
func (b Booking) Cancellable() bool {
	return b.Status == StatusScheduled
}
