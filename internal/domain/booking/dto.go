package booking

import "time"

// CreateBookingRequest represents booking creation request from the booking wizard.
type CreateBookingRequest struct {
	ProfessionalID string   `json:"professional_id" validate:"required,max=64"`
	Date           string   `json:"date" validate:"required,calendar_date"`
	Time           string   `json:"time" validate:"required,clock"`
	PackageIDs     []string `json:"package_ids" validate:"max=10,dive,required"`
	Notes          string   `json:"notes" validate:"max=1000"`
}

// BookingResponse represents booking response to frontend.
type BookingResponse struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
