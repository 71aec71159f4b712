package availability

import "errors"

var (
	// ErrInvalidTimeFormat is returned when a schedule time matches none of the accepted layouts
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidDate is returned when a calendar date cannot be parsed
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownPackage is returned when a selected package does not belong to the professional
	ErrUnknownPackage = errors.New("unknown service package")

	// ErrSourceUnavailable is returned when schedules or packages cannot be loaded
	ErrSourceUnavailable = errors.New("schedule source unavailable")
)
