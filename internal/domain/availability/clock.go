package availability

import (
	"fmt"
	"strings"
	"time"
)

// clockLayouts are tried in order; the first one that parses wins.
var clockLayouts = []string{"15:04:05", "15:04"}

// Clock is a canonical time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock normalizes "HH:mm", "HH:mm:ss" and "HH:mm:ss.fff" into a Clock.
func ParseClock(s string) (Clock, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
	}
	return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// On anchors the clock to date in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, loc)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Window is a schedule's working window anchored to one date.
type Window struct {
	Start time.Time
	End   time.Time
}

// NormalizeWindow parses a schedule's start and end times and anchors them to d.
func NormalizeWindow(s RecurringSchedule, d Date, loc *time.Location) (Window, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return Window{}, fmt.Errorf("schedule %s start: %w", scheduleLabel(s), err)
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return Window{}, fmt.Errorf("schedule %s end: %w", scheduleLabel(s), err)
	}
	return Window{Start: start.On(d, loc), End: end.On(d, loc)}, nil
}

func scheduleLabel(s RecurringSchedule) string {
	if s.ID != "" {
		return s.ID
	}
	return s.DayOfWeek + " " + s.StartTime + "-" + s.EndTime
}
