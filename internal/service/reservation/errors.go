package reservation

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidQuantity     = errors.New("ticket quantity must be at least 1")
	ErrRateLimited         = errors.New("rate limited")
)
