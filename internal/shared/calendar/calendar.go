package calendar

import "time"

// AddMonthsClamped returns the date n months after anchor, keeping the
// anchor's day-of-month. When the target month is shorter, the day is
// clamped to the month's last day. The day is re-derived from the anchor
// on every call, so a clamped February never shortens the months after it
// (time.AddDate would normalize Jan 31 + 1 month into Mar 2/3).
func AddMonthsClamped(anchor time.Time, n int) time.Time {
	year, month, day := anchor.Date()
	hour, min, sec := anchor.Clock()

	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, anchor.Location())
	if last := DaysIn(target.Year(), target.Month()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, hour, min, sec, anchor.Nanosecond(), anchor.Location())
}

// BiweeklyStep returns the step-th due date (0-based) of a biweekly
// schedule anchored at anchor. Even steps land on the anchor day,
// advancing one calendar month every two steps; odd steps land on the
// anchor day + 15 within that month, carrying into the following month
// when the sum exceeds the month's length. This keeps the schedule
// calendar-aligned (roughly 15/16-day spacing) instead of drifting the
// way a flat +14 or +15 days would.
func BiweeklyStep(anchor time.Time, step int) time.Time {
	base := AddMonthsClamped(anchor, step/2)
	if step%2 == 0 {
		return base
	}

	// time.Date normalizes day overflow into the next month, which is
	// exactly the carry behavior wanted here. The offset comes from the
	// anchor day, not the clamped base day.
	hour, min, sec := anchor.Clock()
	return time.Date(base.Year(), base.Month(), anchor.Day()+15, hour, min, sec, anchor.Nanosecond(), anchor.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
