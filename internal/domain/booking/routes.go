package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router. Every route requires authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateBooking)
	})

	return r
}
