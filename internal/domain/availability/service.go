package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mwork/booking-api/internal/pkg/cache"
	"github.com/mwork/booking-api/internal/pkg/logger"
)

// ScheduleSource loads the recurring schedules of a professional
type ScheduleSource interface {
	ListSchedules(ctx context.Context, professionalID string) ([]RecurringSchedule, error)
}

// PackageSource loads the service packages of a professional
type PackageSource interface {
	ListPackages(ctx context.Context, professionalID string) ([]ServicePackage, error)
}

// Service answers availability questions for the booking wizard
type Service struct {
	schedules ScheduleSource
	packages  PackageSource
	cache     cache.Cache
	now       func() time.Time
}

// NewService creates availability service. A nil cache disables caching;
// now decides both the current instant and the time zone dates are read in.
func NewService(schedules ScheduleSource, packages PackageSource, c cache.Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		schedules: schedules,
		packages:  packages,
		cache:     c,
		now:       now,
	}
}

// GetAvailability returns the bookable start times for a date and package selection
func (s *Service) GetAvailability(ctx context.Context, q Query) (*AvailabilityResponse, error) {
	date, err := ParseDate(q.Date)
	if err != nil {
		return nil, err
	}

	schedules, err := s.loadSchedules(ctx, q.ProfessionalID)
	if err != nil {
		return nil, err
	}

	durations, packageIDs, err := s.selectedDurations(ctx, q.ProfessionalID, q.PackageIDs)
	if err != nil {
		return nil, err
	}

	result := Compute(Input{
		Schedules:        schedules,
		PackageDurations: durations,
		Date:             &date,
		Now:              s.now(),
	})

	for _, skipErr := range result.Skipped {
		logger.FromContext(ctx).Warn().
			Err(skipErr).
			Str("professional_id", q.ProfessionalID).
			Msg("Skipping malformed schedule")
	}

	return &AvailabilityResponse{
		ProfessionalID:  q.ProfessionalID,
		Date:            result.Date.String(),
		Weekday:         strings.ToLower(result.Date.Weekday().String()),
		PackageIDs:      packageIDs,
		DurationMinutes: result.DurationMinutes,
		Outcome:         result.Outcome,
		Message:         result.Message(),
		Times:           result.Times,
	}, nil
}

// Packages lists the bookable packages of a professional
func (s *Service) Packages(ctx context.Context, professionalID string) ([]ServicePackage, error) {
	return s.loadPackages(ctx, professionalID)
}

// Invalidate drops cached schedules and packages of a professional
func (s *Service) Invalidate(ctx context.Context, professionalID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, schedulesKey(professionalID)); err != nil {
		return fmt.Errorf("invalidate schedules: %w", err)
	}
	if err := s.cache.Delete(ctx, packagesKey(professionalID)); err != nil {
		return fmt.Errorf("invalidate packages: %w", err)
	}
	return nil
}

// selectedDurations resolves package IDs against the catalog. Repeated IDs count once.
func (s *Service) selectedDurations(ctx context.Context, professionalID string, ids []string) ([]int, []string, error) {
	selected := []string{}
	if len(ids) == 0 {
		return nil, selected, nil
	}

	catalog, err := s.loadPackages(ctx, professionalID)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]ServicePackage, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	seen := make(map[string]bool, len(ids))
	durations := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		p, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownPackage, id)
		}
		durations = append(durations, p.DurationMinutes)
		selected = append(selected, id)
	}
	return durations, selected, nil
}

func (s *Service) loadSchedules(ctx context.Context, professionalID string) ([]RecurringSchedule, error) {
	return cached(ctx, s.cache, schedulesKey(professionalID), func() ([]RecurringSchedule, error) {
		schedules, err := s.schedules.ListSchedules(ctx, professionalID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return schedules, nil
	})
}

func (s *Service) loadPackages(ctx context.Context, professionalID string) ([]ServicePackage, error) {
	return cached(ctx, s.cache, packagesKey(professionalID), func() ([]ServicePackage, error) {
		packages, err := s.packages.ListPackages(ctx, professionalID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return packages, nil
	})
}

// cached reads key from c, falling back to load and storing its result.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c cache.Cache, key string, load func() ([]T, error)) ([]T, error) {
	if c == nil {
		return load()
	}

	log := logger.FromContext(ctx)
	if raw, ok, err := c.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Availability cache read failed")
	} else if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := c.Set(ctx, key, raw); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Availability cache write failed")
		}
	}
	return items, nil
}

func schedulesKey(professionalID string) string { return "schedules:" + professionalID }
func packagesKey(professionalID string) string  { return "packages:" + professionalID }
