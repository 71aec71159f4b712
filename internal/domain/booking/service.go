package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwork/booking-api/internal/domain/availability"
	"github.com/mwork/booking-api/internal/pkg/backend"
	"github.com/mwork/booking-api/internal/pkg/logger"
)

// AvailabilityChecker recomputes the offered start times for a selection
type AvailabilityChecker interface {
	GetAvailability(ctx context.Context, q availability.Query) (*availability.AvailabilityResponse, error)
}

// Submitter forwards a booking to the system of record
type Submitter interface {
	CreateBooking(ctx context.Context, req backend.BookingRequest) (*backend.BookingResult, error)
}

// Service validates chosen slots and submits bookings
type Service struct {
	availability AvailabilityChecker
	submitter    Submitter
	loc          *time.Location
}

// NewService creates booking service. loc is the zone wall-clock times are booked in.
func NewService(checker AvailabilityChecker, submitter Submitter, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		availability: checker,
		submitter:    submitter,
		loc:          loc,
	}
}

// Create re-checks the slot against current availability and submits the booking
func (s *Service) Create(ctx context.Context, clientID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	offered, err := s.availability.GetAvailability(ctx, availability.Query{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		PackageIDs:     req.PackageIDs,
	})
	if err != nil {
		return nil, err
	}

	if !offered.Has(req.Time) {
		reason := offered.Message
		if reason == "" {
			reason = "The selected time is no longer available"
		}
		return nil, fmt.Errorf("%w: %s", ErrSlotUnavailable, reason)
	}

	date, err := availability.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := availability.ParseClock(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSlotUnavailable, err)
	}

	start := clock.On(date, s.loc)
	end := start.Add(time.Duration(offered.DurationMinutes) * time.Minute)

	result, err := s.submitter.CreateBooking(ctx, backend.BookingRequest{
		ProfessionalID: req.ProfessionalID,
		ClientID:       clientID.String(),
		PackageIDs:     offered.PackageIDs,
		StartTime:      start,
		EndTime:        end,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, backend.ErrBookingConflict) {
			return nil, ErrBookingConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", result.ID).
		Str("professional_id", req.ProfessionalID).
		Str("client_id", clientID.String()).
		Time("start_time", start).
		Int("duration_minutes", offered.DurationMinutes).
		Msg("Booking submitted")

	return &BookingResponse{
		BookingID: result.ID,
		Status:    result.Status,
		StartTime: start,
		EndTime:   end,
	}, nil
}
