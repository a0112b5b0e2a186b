// Package parser turns free-text queries into time-range and site filters
// used to scope search and review. Matching is case-insensitive; anything
// unmatched means "no filter", never an error.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/timerange"
)

// ParsedTimeQuery is the time constraint recognized in a query.
// Both bounds are always set when a pattern matches; Label is for display.
type ParsedTimeQuery struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

var (
	reToday       = regexp.MustCompile(`\btoday\b`)
	reYesterday   = regexp.MustCompile(`\byesterday\b`)
	reThisWeek    = regexp.MustCompile(`\bthis week\b`)
	reLastWeek    = regexp.MustCompile(`\blast week\b`)
	reThisMonth   = regexp.MustCompile(`\bthis month\b`)
	reLastMonth   = regexp.MustCompile(`\blast month\b`)
	reThisQuarter = regexp.MustCompile(`\bthis q(?:uarter)?\b`)
	reQuarterNum  = regexp.MustCompile(`\bq([1-4])\b`)
	reLastQuarter = regexp.MustCompile(`\blast quarter\b`)
	reLastN       = regexp.MustCompile(`\blast (\d+) (day|week|month)s?\b`)

	reMonthName = regexp.MustCompile(`\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)
)

// monthIndex maps the first three letters of an English month name to its
// time.Month value.
var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// timeMatcher attempts one pattern category against the lowercased query.
type timeMatcher func(q string, now time.Time) *ParsedTimeQuery

// timeMatchers is the precedence-ordered pattern list. The first match wins;
// a query mentioning two time phrases honors only the earlier-listed one.
var timeMatchers = []timeMatcher{
	matchToday,
	matchYesterday,
	matchThisWeek,
	matchLastWeek,
	matchThisMonth,
	matchLastMonth,
	matchQuarter,
	matchLastQuarter,
	matchMonthName,
	matchLastN,
}

// ParseTimeQuery extracts an explicit time constraint from query, relative
// to now. Returns nil when no pattern matches; callers must not assume a
// time filter in that case.
func ParseTimeQuery(query string, now time.Time) *ParsedTimeQuery {
	q := strings.ToLower(query)
	for _, match := range timeMatchers {
		if parsed := match(q, now); parsed != nil {
			return parsed
		}
	}
	return nil
}

func matchToday(q string, now time.Time) *ParsedTimeQuery {
	if !reToday.MatchString(q) {
		return nil
	}
	return &ParsedTimeQuery{Start: timerange.StartOfDay(now), End: now, Label: "today"}
}

func matchYesterday(q string, now time.Time) *ParsedTimeQuery {
	if !reYesterday.MatchString(q) {
		return nil
	}
	today := timerange.StartOfDay(now)
	return &ParsedTimeQuery{Start: today.AddDate(0, 0, -1), End: today, Label: "yesterday"}
}

func matchThisWeek(q string, now time.Time) *ParsedTimeQuery {
	if !reThisWeek.MatchString(q) {
		return nil
	}
	return &ParsedTimeQuery{Start: timerange.StartOfWeek(now), End: now, Label: "this week"}
}

func matchLastWeek(q string, now time.Time) *ParsedTimeQuery {
	if !reLastWeek.MatchString(q) {
		return nil
	}
	week := timerange.StartOfWeek(now)
	return &ParsedTimeQuery{Start: week.AddDate(0, 0, -7), End: week, Label: "last week"}
}

func matchThisMonth(q string, now time.Time) *ParsedTimeQuery {
	if !reThisMonth.MatchString(q) {
		return nil
	}
	return &ParsedTimeQuery{Start: timerange.StartOfMonth(now), End: now, Label: "this month"}
}

func matchLastMonth(q string, now time.Time) *ParsedTimeQuery {
	if !reLastMonth.MatchString(q) {
		return nil
	}
	month := timerange.StartOfMonth(now)
	return &ParsedTimeQuery{Start: month.AddDate(0, -1, 0), End: month, Label: "last month"}
}

// matchQuarter handles "this quarter", "this q" and bare "q1".."q4".
// An explicit quarter number refers to that quarter of the current year,
// which may lie in the future; the end bound is capped at now either way.
func matchQuarter(q string, now time.Time) *ParsedTimeQuery {
	quarter := 0
	if m := reQuarterNum.FindStringSubmatch(q); m != nil {
		quarter, _ = strconv.Atoi(m[1])
	} else if reThisQuarter.MatchString(q) {
		quarter = timerange.QuarterOf(now)
	}
	if quarter == 0 {
		return nil
	}

	start, end := timerange.QuarterRange(now.Year(), quarter, now.Location())
	if end.After(now) {
		end = now
	}
	return &ParsedTimeQuery{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("Q%d %d", quarter, now.Year()),
	}
}

func matchLastQuarter(q string, now time.Time) *ParsedTimeQuery {
	if !reLastQuarter.MatchString(q) {
		return nil
	}
	quarter := timerange.QuarterOf(now) - 1
	year := now.Year()
	if quarter == 0 {
		quarter = 4
		year--
	}
	start, end := timerange.QuarterRange(year, quarter, now.Location())
	return &ParsedTimeQuery{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("Q%d %d", quarter, year),
	}
}

// matchMonthName handles full and 3-letter English month names. A month
// later in the calendar than the current one is assumed to be last year's;
// the window is never future-dated.
func matchMonthName(q string, now time.Time) *ParsedTimeQuery {
	m := reMonthName.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	month := monthIndex[m[1][:3]]

	year := now.Year()
	if month > now.Month() {
		year--
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)
	if end.After(now) {
		end = now
	}
	return &ParsedTimeQuery{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s %d", start.Month(), year),
	}
}

// matchLastN handles "last N days|weeks|months". Weeks are 7 days; months
// use calendar subtraction rather than a fixed 30 days.
func matchLastN(q string, now time.Time) *ParsedTimeQuery {
	m := reLastN.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil
	}

	var start time.Time
	switch m[2] {
	case "day":
		start = now.AddDate(0, 0, -n)
	case "week":
		start = now.AddDate(0, 0, -7*n)
	case "month":
		start = now.AddDate(0, -n, 0)
	}
	return &ParsedTimeQuery{
		Start: start,
		End:   now,
		Label: fmt.Sprintf("last %d %ss", n, m[2]),
	}
}
