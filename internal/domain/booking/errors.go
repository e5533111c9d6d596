package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrNoDraft         = errors.New("no reservation in progress")
	ErrInvalidStep     = errors.New("invalid step for current view")
)
