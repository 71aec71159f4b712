package availability

import "strings"

// Query selects a professional, a date and the packages the client wants to book
type Query struct {
	ProfessionalID string
	Date           string
	PackageIDs     []string
}

// AvailabilityRequest is the validated form of the availability query string
type AvailabilityRequest struct {
	Date       string   `json:"date" validate:"required,calendar_date"`
	PackageIDs []string `json:"packages" validate:"max=10,dive,required"`
}

// SelectMessage is sent by the booking wizard over the live channel
type SelectMessage struct {
	Type       string   `json:"type"`
	Date       string   `json:"date" validate:"required,calendar_date"`
	PackageIDs []string `json:"package_ids" validate:"max=10,dive,required"`
}

// AvailabilityResponse lists bookable start times for one date
type AvailabilityResponse struct {
	ProfessionalID  string   `json:"professional_id"`
	Date            string   `json:"date"`
	Weekday         string   `json:"weekday"`
	PackageIDs      []string `json:"package_ids"`
	DurationMinutes int      `json:"duration_minutes"`
	Outcome         Outcome  `json:"outcome"`
	Message         string   `json:"message,omitempty"`
	Times           []string `json:"times"`
}

// Has reports whether hhmm is one of the offered start times
func (r *AvailabilityResponse) Has(hhmm string) bool {
	for _, t := range r.Times {
		if t == hhmm {
			return true
		}
	}
	return false
}

// LiveEvent is pushed to live channel subscribers
type LiveEvent struct {
	Type  string                `json:"type"`
	Data  *AvailabilityResponse `json:"data,omitempty"`
	Error string                `json:"error,omitempty"`
}

// splitIDs parses a comma separated id list, dropping blanks
func splitIDs(raw string) []string {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
