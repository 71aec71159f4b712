package booking

import "errors"

var (
	// ErrSlotUnavailable is returned when the chosen start time is not offered for the date
	ErrSlotUnavailable = errors.New("selected time is not available")

	// ErrBookingConflict is returned when the backend already holds a booking for the slot
	ErrBookingConflict = errors.New("time slot was just booked by someone else")

	// ErrSubmitFailed is returned when the backend could not be reached or refused the booking
	ErrSubmitFailed = errors.New("booking submission failed")
)
