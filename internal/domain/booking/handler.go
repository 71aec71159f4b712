package booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mwork/booking-api/internal/domain/availability"
	"github.com/mwork/booking-api/internal/middleware"
	"github.com/mwork/booking-api/internal/pkg/errorhandler"
	"github.com/mwork/booking-api/internal/pkg/response"
	"github.com/mwork/booking-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	booking, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrBookingConflict):
			response.Conflict(w, err.Error())
		case errors.Is(err, availability.ErrUnknownPackage):
			response.BadRequest(w, err.Error())
		case errors.Is(err, availability.ErrInvalidDate):
			response.ValidationError(w, map[string]string{"date": "Invalid date. Expected format: YYYY-MM-DD"})
		case errors.Is(err, availability.ErrSourceUnavailable):
			errorhandler.HandleUpstreamError(r.Context(), w, "Schedule service", err)
		case errors.Is(err, ErrSubmitFailed):
			errorhandler.HandleUpstreamError(r.Context(), w, "Booking service", err)
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking", err)
		}
		return
	}

	response.Created(w, booking)
}
