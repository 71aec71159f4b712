package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns availability router mounted under /professionals
func (h *Handler) Routes(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/{id}", func(r chi.Router) {
		r.With(limit).Get("/availability", h.GetAvailability)
		r.With(limit).Get("/packages", h.ListPackages)
		r.Get("/availability/live", h.Live)
	})

	return r
}
