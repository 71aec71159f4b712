package availability

import "time"

// Input holds everything a single availability computation depends on.
type Input struct {
	Schedules        []RecurringSchedule
	PackageDurations []int
	Date             *Date
	Now              time.Time
}

// Result is the outcome of one computation.
type Result struct {
	Date            Date
	Outcome         Outcome
	Matched         []RecurringSchedule
	Times           []string
	Skipped         []error
	DurationMinutes int
}

// SessionMinutes sums package durations, ignoring negative values. Zero means
// no package contributed and DefaultSessionDuration applies.
func SessionMinutes(durations []int) int {
	total := 0
	for _, d := range durations {
		if d > 0 {
			total += d
		}
	}
	if total == 0 {
		return int(DefaultSessionDuration / time.Minute)
	}
	return total
}

// Compute matches schedules to the input date and aggregates their slots.
func Compute(in Input) Result {
	minutes := SessionMinutes(in.PackageDurations)
	if in.Date == nil {
		return Result{Times: []string{}, DurationMinutes: minutes}
	}

	match := MatchSchedules(*in.Date, in.Schedules)
	times, skipped := AggregateSlots(match.Schedules, *in.Date, time.Duration(minutes)*time.Minute, in.Now)

	return Result{
		Date:            *in.Date,
		Outcome:         match.Outcome,
		Matched:         match.Schedules,
		Times:           times,
		Skipped:         skipped,
		DurationMinutes: minutes,
	}
}

// Message is the user-facing explanation for an empty or classified result.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeNoScheduleForWeekday:
		return "The professional does not work on " + r.Date.Weekday().String() + "s"
	case OutcomeOutsideValidityWindow:
		return "The professional's schedule is not active on this date"
	case OutcomeMatched:
		if len(r.Times) == 0 {
			return "No times available for this date"
		}
	}
	return ""
}
