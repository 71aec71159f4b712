package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwork/booking-api/internal/domain/availability"
	"github.com/mwork/booking-api/internal/domain/booking"
	"github.com/mwork/booking-api/internal/middleware"
	"github.com/mwork/booking-api/internal/pkg/backend"
	"github.com/mwork/booking-api/internal/pkg/jwt"
)

type staticCatalog struct{}

func (staticCatalog) ListSchedules(context.Context, string) ([]availability.RecurringSchedule, error) {
	return []availability.RecurringSchedule{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "12:00", IsActive: true},
	}, nil
}

func (staticCatalog) ListPackages(context.Context, string) ([]availability.ServicePackage, error) {
	return []availability.ServicePackage{}, nil
}

type noopSubmitter struct{}

func (noopSubmitter) CreateBooking(context.Context, backend.BookingRequest) (*backend.BookingResult, error) {
	return &backend.BookingResult{ID: "b-1", Status: "pending"}, nil
}

func newTestRouter() http.Handler {
	now := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	availabilitySvc := availability.NewService(staticCatalog{}, staticCatalog{}, nil, now)

	return newRouter(routes{
		availability:   availability.NewHandler(availabilitySvc, nil),
		booking:        booking.NewHandler(booking.NewService(availabilitySvc, noopSubmitter{}, time.UTC)),
		auth:           middleware.Auth(jwt.NewService("secret", time.Minute)),
		limit:          middleware.NewRateLimiter(100, 100).Handler,
		allowedOrigins: []string{"http://localhost:3000"},
	})
}

func TestRouterMountsEndpoints(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		name   string
		method string
		target string
		want   int
		expect string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, `"status":"ok"`},
		{"ping", http.MethodGet, "/api/v1/ping", http.StatusOK, "pong"},
		{"availability", http.MethodGet, "/api/v1/professionals/pro-1/availability?date=2024-06-10", http.StatusOK, `"times":["10:00","10:30","11:00"]`},
		{"packages", http.MethodGet, "/api/v1/professionals/pro-1/packages", http.StatusOK, `"data":[]`},
		{"booking requires auth", http.MethodPost, "/api/v1/bookings", http.StatusUnauthorized, "Missing authorization header"},
		{"unknown route", http.MethodGet, "/api/v1/castings", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d: %s", tc.want, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tc.expect) {
				t.Fatalf("expected body to contain %q, got %s", tc.expect, rr.Body.String())
			}
			if tc.want != http.StatusNotFound && rr.Header().Get("X-Request-ID") == "" {
				t.Fatal("expected request id header")
			}
		})
	}
}
