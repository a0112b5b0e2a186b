// Package timerange computes canonical calendar windows relative to a
// caller-supplied "now". All boundaries use the local calendar of now's
// location; weeks start on Sunday.
package timerange

import "time"

// Range is a derived, ephemeral time window. Start <= End always holds.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls within the range, inclusive of both bounds.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Ranges holds the named windows used by insights and query scoping.
type Ranges struct {
	Today       Range
	ThisWeek    Range
	LastWeek    Range
	ThisMonth   Range
	ThisQuarter Range
}

// Resolve computes all named ranges relative to now. Callers must resolve
// per use rather than caching a Ranges value, since now advances.
func Resolve(now time.Time) Ranges {
	today := StartOfDay(now)
	week := StartOfWeek(now)
	month := StartOfMonth(now)
	quarter := StartOfQuarter(now)

	return Ranges{
		Today:       Range{Start: today, End: now, Label: "today"},
		ThisWeek:    Range{Start: week, End: now, Label: "this week"},
		LastWeek:    Range{Start: week.AddDate(0, 0, -7), End: week, Label: "last week"},
		ThisMonth:   Range{Start: month, End: now, Label: "this month"},
		ThisQuarter: Range{Start: quarter, End: now, Label: "this quarter"},
	}
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns local midnight of the most recent Sunday.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth returns local midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfQuarter returns local midnight of the first day of t's calendar
// quarter (Jan, Apr, Jul, Oct).
func StartOfQuarter(t time.Time) time.Time {
	firstMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, t.Location())
}

// QuarterOf returns the 1-based quarter number of t.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// QuarterRange returns the full window of the given quarter (1-4) in the
// given year. The end bound is the start of the following quarter.
func QuarterRange(year, quarter int, loc *time.Location) (time.Time, time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 3, 0)
}
