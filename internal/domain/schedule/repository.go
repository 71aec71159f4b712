package schedule

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mwork/booking-api/internal/domain/availability"
)

// Repository reads schedules and packages straight from the marketplace database
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new schedule repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListSchedules returns every recurring schedule of a professional, active or not
func (r *Repository) ListSchedules(ctx context.Context, professionalID string) ([]availability.RecurringSchedule, error) {
	query := `
		SELECT id::text, professional_id::text, day_of_week, start_time::text, end_time::text,
		       is_active, valid_from::text, valid_until::text
		FROM professional_schedules
		WHERE professional_id::text = $1
		ORDER BY id
	`
	var rows []ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, professionalID); err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}

	schedules := make([]availability.RecurringSchedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, row.ToSchedule())
	}
	return schedules, nil
}

// ListPackages returns the service packages of a professional
func (r *Repository) ListPackages(ctx context.Context, professionalID string) ([]availability.ServicePackage, error) {
	query := `
		SELECT id::text, professional_id::text, name, duration_minutes, price::float8 AS price
		FROM service_packages
		WHERE professional_id::text = $1
		ORDER BY name, id
	`
	var rows []PackageRow
	if err := r.db.SelectContext(ctx, &rows, query, professionalID); err != nil {
		return nil, fmt.Errorf("select packages: %w", err)
	}

	packages := make([]availability.ServicePackage, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, row.ToPackage())
	}
	return packages, nil
}
