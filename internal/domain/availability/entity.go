package availability

// RecurringSchedule is a weekly availability window of a professional as
// delivered by the backend. Times and bounds stay in their wire form and are
// normalized during computation.
type RecurringSchedule struct {
	ID         string `json:"id,omitempty"`
	DayOfWeek  string `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	IsActive   bool   `json:"isActive"`
	ValidFrom  string `json:"validFrom,omitempty"`
	ValidUntil string `json:"validUntil,omitempty"`
}

// ServicePackage is a bookable service offered by a professional.
type ServicePackage struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price,omitempty"`
}

// Outcome classifies which schedules govern a candidate date.
type Outcome string

const (
	OutcomeMatched               Outcome = "matched"
	OutcomeOutsideValidityWindow Outcome = "outside_validity_window"
	OutcomeNoScheduleForWeekday  Outcome = "no_schedule_for_weekday"
)
