package availability

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestAggregateSlotsUnionsOverlappingSchedules(t *testing.T) {
	day := Date{Year: 2024, Month: time.June, Day: 12}
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := []RecurringSchedule{
		{ID: "a", DayOfWeek: "wednesday", StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{ID: "b", DayOfWeek: "wednesday", StartTime: "11:00:00", EndTime: "15:00:00", IsActive: true},
	}

	got, skipped := AggregateSlots(schedules, day, time.Hour, now)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped: %v", skipped)
	}

	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"12:00", "12:30", "13:00", "13:30", "14:00",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("slot %s appears twice", s)
		}
		seen[s] = true
	}
}

func TestAggregateSlotsSortsDisjointSchedules(t *testing.T) {
	day := Date{Year: 2024, Month: time.June, Day: 12}
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := []RecurringSchedule{
		{DayOfWeek: "wednesday", StartTime: "15:00", EndTime: "16:00", IsActive: true},
		{DayOfWeek: "wednesday", StartTime: "08:00", EndTime: "09:00", IsActive: true},
	}

	got, _ := AggregateSlots(schedules, day, time.Hour, now)
	want := []string{"08:00", "15:00"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAggregateSlotsSkipsMalformedSchedule(t *testing.T) {
	day := Date{Year: 2024, Month: time.June, Day: 12}
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := []RecurringSchedule{
		{ID: "broken", DayOfWeek: "wednesday", StartTime: "9 o'clock", EndTime: "12:00", IsActive: true},
		{ID: "ok", DayOfWeek: "wednesday", StartTime: "13:00", EndTime: "14:00", IsActive: true},
	}

	got, skipped := AggregateSlots(schedules, day, time.Hour, now)
	if len(skipped) != 1 || !errors.Is(skipped[0], ErrInvalidTimeFormat) {
		t.Fatalf("expected one ErrInvalidTimeFormat, got %v", skipped)
	}
	if !slices.Equal(got, []string{"13:00"}) {
		t.Fatalf("expected [13:00], got %v", got)
	}
}

func TestAggregateSlotsEmpty(t *testing.T) {
	got, skipped := AggregateSlots(nil, Date{Year: 2024, Month: time.June, Day: 12}, time.Hour, time.Now())
	if got == nil || len(got) != 0 || len(skipped) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v %v", got, skipped)
	}
}

func TestAggregateSlotsIdempotent(t *testing.T) {
	day := Date{Year: 2024, Month: time.June, Day: 10}
	now := time.Date(2024, 6, 10, 11, 10, 0, 0, time.UTC)
	schedules := []RecurringSchedule{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "13:00", IsActive: true},
		{DayOfWeek: "monday", StartTime: "12:00", EndTime: "19:00", IsActive: true},
		{DayOfWeek: "monday", StartTime: "16:30", EndTime: "18:00", IsActive: true},
	}

	first, _ := AggregateSlots(schedules, day, 90*time.Minute, now)
	for i := 0; i < 10; i++ {
		again, _ := AggregateSlots(schedules, day, 90*time.Minute, now)
		if !slices.Equal(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestAggregateSlotsRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	day := Date{Year: 2024, Month: time.June, Day: 10}
	// 14:00 local time on the same calendar day.
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, loc)
	schedules := []RecurringSchedule{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}

	got, _ := AggregateSlots(schedules, day, time.Hour, now)
	want := []string{"14:30", "15:00", "15:30", "16:00", "16:30", "17:00"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
