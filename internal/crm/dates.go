package crm

import "time"

// dayKey is the calendar-day key used by the daily stats map.
func dayKey(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}

// endOfDay normalizes a follow-up to 23:59:59 local time, giving every
// follow-up a grace window until the end of its calendar day.
func endOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// IsTodayOrPast reports whether a follow-up is due: anything up to the
// end of the current day counts, so "later today" is already due.
func IsTodayOrPast(t time.Time, now time.Time) bool {
	return !t.After(endOfDay(now))
}

// IsOverdue reports whether a follow-up became due on a prior calendar day.
// Overdue implies due.
func IsOverdue(t time.Time, now time.Time) bool {
	return endOfDay(t).Before(now)
}
