// utils/urgency.go
package utils

import "time"

// Urgency levels for deadline-style dates.
const (
	UrgencyUrgent  = "urgent"
	UrgencyWarning = "warning"
	UrgencySafe    = "safe"
	UrgencyNone    = "none"
)

// Aging levels for elapsed-time dates.
const (
	AgingFresh     = "fresh"
	AgingStale     = "stale"
	AgingVeryStale = "verystale"
	AgingNone      = "none"
)

// ClassifyDeadline buckets a future target date by whole days remaining:
// under 7 urgent, 7 through 14 warning, over 14 safe. Overdue dates are
// urgent. Missing dates classify as "none" rather than erroring.
func ClassifyDeadline(target *time.Time) string {
	if target == nil || target.IsZero() {
		return UrgencyNone
	}
	diff := DaysBetween(time.Now(), *target)
	switch {
	case diff < 7:
		return UrgencyUrgent
	case diff <= 14:
		return UrgencyWarning
	default:
		return UrgencySafe
	}
}

// ClassifyAging buckets days elapsed since an event: under 7 fresh, 7
// through 30 stale, over 30 very stale. The thresholds intentionally differ
// from ClassifyDeadline's.
func ClassifyAging(event *time.Time) string {
	if event == nil || event.IsZero() {
		return AgingNone
	}
	elapsed := DaysBetween(*event, time.Now())
	switch {
	case elapsed < 7:
		return AgingFresh
	case elapsed <= 30:
		return AgingStale
	default:
		return AgingVeryStale
	}
}
