package availability

import (
	"iter"
	"time"
)

const (
	// SlotStep is the granularity of candidate slot starts.
	SlotStep = 30 * time.Minute

	// DefaultSessionDuration applies when no package contributes a duration.
	DefaultSessionDuration = 60 * time.Minute
)

// GenerateSlots yields the valid slot starts of a window. A start is valid when
// the whole session fits before the window closes and, on now's calendar day,
// when it lies strictly after now.
func GenerateSlots(w Window, duration time.Duration, now time.Time) iter.Seq[time.Time] {
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	today := DateOf(w.Start.In(now.Location())) == DateOf(now)

	return func(yield func(time.Time) bool) {
		for t := w.Start; t.Before(w.End); t = t.Add(SlotStep) {
			if t.Add(duration).After(w.End) {
				continue
			}
			if today && !t.After(now) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
