package availability

import (
	"sort"
	"time"
)

// SlotLayout is the textual form of a slot start.
const SlotLayout = "15:04"

// AggregateSlots unions the slots of every matched schedule on d into a sorted
// list of distinct "HH:mm" starts. Schedules whose times cannot be normalized
// are skipped and reported.
func AggregateSlots(matched []RecurringSchedule, d Date, duration time.Duration, now time.Time) ([]string, []error) {
	seen := make(map[string]struct{})
	var skipped []error

	for _, s := range matched {
		w, err := NormalizeWindow(s, d, now.Location())
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		for t := range GenerateSlots(w, duration, now) {
			seen[t.Format(SlotLayout)] = struct{}{}
		}
	}

	times := make([]string, 0, len(seen))
	for k := range seen {
		times = append(times, k)
	}
	sort.Strings(times)

	return times, skipped
}
