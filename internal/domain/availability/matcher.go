package availability

// MatchResult is the subset of schedules governing a date plus its classification.
type MatchResult struct {
	Schedules []RecurringSchedule
	Outcome   Outcome
}

// MatchSchedules returns the active schedules for d's weekday whose validity
// window contains d.
func MatchSchedules(d Date, schedules []RecurringSchedule) MatchResult {
	weekday := d.Weekday()
	matched := make([]RecurringSchedule, 0)
	worksWeekday := false

	for _, s := range schedules {
		if !s.IsActive {
			continue
		}
		wd, ok := ParseWeekday(s.DayOfWeek)
		if !ok || wd != weekday {
			continue
		}
		worksWeekday = true

		if !withinValidity(d, s) {
			continue
		}
		matched = append(matched, s)
	}

	switch {
	case len(matched) > 0:
		return MatchResult{Schedules: matched, Outcome: OutcomeMatched}
	case worksWeekday:
		return MatchResult{Schedules: matched, Outcome: OutcomeOutsideValidityWindow}
	default:
		return MatchResult{Schedules: matched, Outcome: OutcomeNoScheduleForWeekday}
	}
}

// withinValidity ignores bounds that are absent or unparseable.
func withinValidity(d Date, s RecurringSchedule) bool {
	if s.ValidFrom != "" {
		if from, err := ParseBoundDate(s.ValidFrom); err == nil && d.Before(from) {
			return false
		}
	}
	if s.ValidUntil != "" {
		if until, err := ParseBoundDate(s.ValidUntil); err == nil && d.After(until) {
			return false
		}
	}
	return true
}
