package errorhandler

import (
	"context"
	"net/http"

	"github.com/mwork/booking-api/internal/middleware"
	"github.com/mwork/booking-api/internal/pkg/logger"
	"github.com/mwork/booking-api/internal/pkg/response"
)

// HandleError logs the failure with the request id and sends the error envelope
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("error_code", code).
		Int("status_code", status)

	if err != nil {
		event = event.Err(err)
	}

	event.Msg(message)

	response.Error(w, status, code, message)
}

// HandleUpstreamError logs a failed call to an external dependency and answers 502
func HandleUpstreamError(ctx context.Context, w http.ResponseWriter, service string, err error) {
	logger.FromContext(ctx).Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("external_service", service).
		Err(err).
		Msg("External service error")

	response.BadGateway(w, service+" is unavailable, please try again later")
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Str("request_id", middleware.GetRequestID(ctx)).
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
