package schedule

import (
	"database/sql"

	"github.com/mwork/booking-api/internal/domain/availability"
)

// ScheduleRow mirrors professional_schedules
type ScheduleRow struct {
	ID             string         `db:"id"`
	ProfessionalID string         `db:"professional_id"`
	DayOfWeek      string         `db:"day_of_week"`
	StartTime      string         `db:"start_time"`
	EndTime        string         `db:"end_time"`
	IsActive       bool           `db:"is_active"`
	ValidFrom      sql.NullString `db:"valid_from"`
	ValidUntil     sql.NullString `db:"valid_until"`
}

// PackageRow mirrors service_packages
type PackageRow struct {
	ID              string          `db:"id"`
	ProfessionalID  string          `db:"professional_id"`
	Name            string          `db:"name"`
	DurationMinutes int             `db:"duration_minutes"`
	Price           sql.NullFloat64 `db:"price"`
}

// ToSchedule converts the row to the computation type
func (r ScheduleRow) ToSchedule() availability.RecurringSchedule {
	return availability.RecurringSchedule{
		ID:         r.ID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		IsActive:   r.IsActive,
		ValidFrom:  r.ValidFrom.String,
		ValidUntil: r.ValidUntil.String,
	}
}

// ToPackage converts the row to the computation type
func (r PackageRow) ToPackage() availability.ServicePackage {
	return availability.ServicePackage{
		ID:              r.ID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price.Float64,
	}
}
