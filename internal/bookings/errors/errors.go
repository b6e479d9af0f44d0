package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicateBooking means the user already holds a booking for this
	// treatment on this date.
	ErrDuplicateBooking = errors.New("duplicate booking for user, treatment and date")

	// ErrSlotTaken means another user claimed the slot first.
	ErrSlotTaken = errors.New("slot already taken for treatment and date")
)
