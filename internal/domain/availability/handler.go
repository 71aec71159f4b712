package availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mwork/booking-api/internal/pkg/errorhandler"
	"github.com/mwork/booking-api/internal/pkg/response"
	"github.com/mwork/booking-api/internal/pkg/validator"
)

// Handler handles availability HTTP requests
type Handler struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewHandler creates availability handler. An empty allowedOrigins accepts any
// origin on the live channel.
func NewHandler(service *Service, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// GetAvailability handles GET /api/v1/professionals/{id}/availability
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	req := AvailabilityRequest{
		Date:       strings.TrimSpace(r.URL.Query().Get("date")),
		PackageIDs: splitIDs(r.URL.Query().Get("packages")),
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), Query{
		ProfessionalID: chi.URLParam(r, "id"),
		Date:           req.Date,
		PackageIDs:     req.PackageIDs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, result)
}

// ListPackages handles GET /api/v1/professionals/{id}/packages
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.Packages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if packages == nil {
		packages = []ServicePackage{}
	}
	response.OK(w, packages)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		response.ValidationError(w, map[string]string{"date": "Invalid date. Expected format: YYYY-MM-DD"})
	case errors.Is(err, ErrUnknownPackage):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrSourceUnavailable):
		errorhandler.HandleUpstreamError(r.Context(), w, "Schedule service", err)
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability", err)
	}
}
