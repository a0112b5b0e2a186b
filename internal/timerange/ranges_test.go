package timerange

import (
	"testing"
	"time"
)

// Wednesday, March 18 2026, 14:30 local.
var testNow = time.Date(2026, time.March, 18, 14, 30, 0, 0, time.Local)

func TestResolveToday(t *testing.T) {
	r := Resolve(testNow)

	wantStart := time.Date(2026, time.March, 18, 0, 0, 0, 0, time.Local)
	if !r.Today.Start.Equal(wantStart) {
		t.Errorf("Today.Start = %v, want %v", r.Today.Start, wantStart)
	}
	if !r.Today.End.Equal(testNow) {
		t.Errorf("Today.End = %v, want now", r.Today.End)
	}
	if r.Today.Label != "today" {
		t.Errorf("Today.Label = %q", r.Today.Label)
	}
}

func TestResolveWeeks(t *testing.T) {
	r := Resolve(testNow)

	// March 18 2026 is a Wednesday; the most recent Sunday is March 15.
	wantWeek := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)
	if !r.ThisWeek.Start.Equal(wantWeek) {
		t.Errorf("ThisWeek.Start = %v, want %v", r.ThisWeek.Start, wantWeek)
	}

	// Last week is the 7-day window immediately preceding this week's start.
	if !r.LastWeek.End.Equal(wantWeek) {
		t.Errorf("LastWeek.End = %v, want %v", r.LastWeek.End, wantWeek)
	}
	if got := r.LastWeek.End.Sub(r.LastWeek.Start); got != 7*24*time.Hour {
		t.Errorf("LastWeek width = %v, want 168h", got)
	}
}

func TestResolveOnSunday(t *testing.T) {
	// A Sunday resolves to itself as week start.
	sunday := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.Local)
	r := Resolve(sunday)

	wantStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)
	if !r.ThisWeek.Start.Equal(wantStart) {
		t.Errorf("ThisWeek.Start on Sunday = %v, want %v", r.ThisWeek.Start, wantStart)
	}
}

func TestResolveMonthAndQuarter(t *testing.T) {
	r := Resolve(testNow)

	wantMonth := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	if !r.ThisMonth.Start.Equal(wantMonth) {
		t.Errorf("ThisMonth.Start = %v, want %v", r.ThisMonth.Start, wantMonth)
	}

	// March is in Q1, which starts January 1.
	wantQuarter := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	if !r.ThisQuarter.Start.Equal(wantQuarter) {
		t.Errorf("ThisQuarter.Start = %v, want %v", r.ThisQuarter.Start, wantQuarter)
	}
}

func TestStartOfQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.July, time.July},
		{time.September, time.July},
		{time.October, time.October},
		{time.December, time.October},
	}

	for _, tt := range tests {
		in := time.Date(2026, tt.month, 20, 12, 0, 0, 0, time.Local)
		got := StartOfQuarter(in)
		if got.Month() != tt.want || got.Day() != 1 {
			t.Errorf("StartOfQuarter(%v) = %v, want month %v day 1", tt.month, got, tt.want)
		}
	}
}

func TestQuarterRange(t *testing.T) {
	start, end := QuarterRange(2026, 4, time.Local)
	if start.Month() != time.October || start.Year() != 2026 {
		t.Errorf("Q4 start = %v", start)
	}
	if end.Month() != time.January || end.Year() != 2027 {
		t.Errorf("Q4 end = %v", end)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: testNow.Add(-time.Hour), End: testNow}

	if !r.Contains(testNow) {
		t.Error("end bound should be inclusive")
	}
	if !r.Contains(r.Start) {
		t.Error("start bound should be inclusive")
	}
	if r.Contains(testNow.Add(time.Second)) {
		t.Error("after end should be excluded")
	}
}
