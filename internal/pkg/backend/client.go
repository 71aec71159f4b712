package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/mwork/booking-api/internal/domain/availability"
)

const defaultTimeout = 10 * time.Second

// ErrBookingConflict is returned when the backend rejects a booking because the slot is taken
var ErrBookingConflict = errors.New("booking conflict")

// Client talks to the marketplace backend that owns schedules, packages and bookings.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// BookingRequest is the payload sent to the backend when a client books a session.
type BookingRequest struct {
	ProfessionalID string    `json:"professional_id"`
	ClientID       string    `json:"client_id"`
	PackageIDs     []string  `json:"package_ids"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Notes          string    `json:"notes,omitempty"`
}

// BookingResult is the backend's answer to a booking request.
type BookingResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// envelope mirrors the backend's standard response wrapper
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient creates a new backend client.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// ListSchedules fetches the recurring schedules of a professional.
func (c *Client) ListSchedules(ctx context.Context, professionalID string) ([]availability.RecurringSchedule, error) {
	var out envelope[[]availability.RecurringSchedule]
	path := "/professionals/" + url.PathEscape(professionalID) + "/schedules"
	if err := c.do(ctx, "list schedules", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListPackages fetches the bookable service packages of a professional.
func (c *Client) ListPackages(ctx context.Context, professionalID string) ([]availability.ServicePackage, error) {
	var out envelope[[]availability.ServicePackage]
	path := "/professionals/" + url.PathEscape(professionalID) + "/packages"
	if err := c.do(ctx, "list packages", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateBooking submits a booking. A 409 answer maps to ErrBookingConflict.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	var out envelope[BookingResult]
	if err := c.do(ctx, "create booking", http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, dst interface{}) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("backend %s request error: client is nil", op)
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return fmt.Errorf("backend %s config error: base_url is empty", op)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend %s request error: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend %s request error: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(ctx, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("backend %s decode error: %w", op, err)
		}
		return nil
	}

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr != nil {
		return fmt.Errorf("backend %s http error: status=%d body=<failed to read body: %v>", op, resp.StatusCode, readErr)
	}

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s", ErrBookingConflict, strings.TrimSpace(string(respBody)))
	}

	return fmt.Errorf("backend %s http error: status=%d body=%s", op, resp.StatusCode, string(respBody))
}

func classifyRequestError(ctx context.Context, op string, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("backend %s timeout: %w", op, err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("backend %s network error: %w", op, err)
	}
	return fmt.Errorf("backend %s request error: %w", op, err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}
