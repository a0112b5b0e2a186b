// Package insights computes derived statistics over a snapshot of journal
// entries: site and time-of-day distributions, activity streaks, the
// week-over-week trend and frequent keywords. Every function here is a pure
// function of the entries and the supplied "now"; empty input yields zeroed
// statistics, never an error.
package insights

import (
	"math"
	"sort"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/timerange"
)

// DefaultKeywordLimit is how many frequent keywords Compute reports.
const DefaultKeywordLimit = 10

// SiteStat is one hostname's share of the current week's captures.
type SiteStat struct {
	Site    string `json:"site"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// PeriodStat is one time-of-day bucket.
type PeriodStat struct {
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// TimeOfDayStats buckets week entries by local hour:
// morning [5,12), afternoon [12,17), evening [17,21), night [21,5).
type TimeOfDayStats struct {
	Morning   PeriodStat `json:"morning"`
	Afternoon PeriodStat `json:"afternoon"`
	Evening   PeriodStat `json:"evening"`
	Night     PeriodStat `json:"night"`
}

// DayOfWeekStats counts the current month's entries per local weekday,
// indexed 0=Sunday.
type DayOfWeekStats struct {
	Counts [7]int `json:"counts"`
}

// StreakInfo describes consecutive-day capture activity over all entries.
type StreakInfo struct {
	Current int  `json:"current"`
	Longest int  `json:"longest"`
	Active  bool `json:"active"`
}

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendSame = "same"
)

// TrendInfo compares this week's entry count against last week's.
// ChangePercent is the absolute magnitude; Direction carries the sign.
type TrendInfo struct {
	ThisWeek      int    `json:"this_week"`
	LastWeek      int    `json:"last_week"`
	ChangePercent int    `json:"change_percent"`
	Direction     string `json:"direction"`
}

// LocalInsights bundles all derived statistics for one snapshot.
type LocalInsights struct {
	TotalEntries int            `json:"total_entries"`
	TodayCount   int            `json:"today_count"`
	WeekCount    int            `json:"week_count"`
	MonthCount   int            `json:"month_count"`
	Sites        []SiteStat     `json:"sites"`
	TimeOfDay    TimeOfDayStats `json:"time_of_day"`
	DayOfWeek    DayOfWeekStats `json:"day_of_week"`
	Streak       StreakInfo     `json:"streak"`
	Trend        TrendInfo      `json:"trend"`
	Keywords     []string       `json:"keywords"`
}

// Compute derives all local insights from the entry snapshot relative to now.
func Compute(entries []models.JournalEntry, now time.Time) LocalInsights {
	ranges := timerange.Resolve(now)
	week := filter(entries, ranges.ThisWeek, now.Location())
	month := filter(entries, ranges.ThisMonth, now.Location())

	return LocalInsights{
		TotalEntries: len(entries),
		TodayCount:   len(filter(entries, ranges.Today, now.Location())),
		WeekCount:    len(week),
		MonthCount:   len(month),
		Sites:        SiteStats(week),
		TimeOfDay:    TimeOfDay(week, now.Location()),
		DayOfWeek:    DayOfWeek(month, now.Location()),
		Streak:       Streak(entries, now),
		Trend:        Trend(entries, now),
		Keywords:     Keywords(week, DefaultKeywordLimit),
	}
}

// filter returns the entries whose capture time falls in [r.Start, r.End).
// Half-open windows keep adjacent ranges (this week / last week) from
// double-counting an entry stamped exactly on the Sunday-midnight boundary.
func filter(entries []models.JournalEntry, r timerange.Range, loc *time.Location) []models.JournalEntry {
	var out []models.JournalEntry
	for _, e := range entries {
		t := e.Created.In(loc)
		if !t.Before(r.Start) && t.Before(r.End) {
			out = append(out, e)
		}
	}
	return out
}

// SiteStats counts week entries per capture hostname ("www." stripped),
// in first-encounter order, sorted descending by count (stable). The
// percentage denominator is the full week entry count, including entries
// without a parseable URL.
func SiteStats(weekEntries []models.JournalEntry) []SiteStat {
	total := len(weekEntries)
	if total == 0 {
		return nil
	}

	index := make(map[string]int)
	var stats []SiteStat
	for _, e := range weekEntries {
		host := e.Hostname()
		if host == "" {
			continue
		}
		i, ok := index[host]
		if !ok {
			i = len(stats)
			index[host] = i
			stats = append(stats, SiteStat{Site: host})
		}
		stats[i].Count++
	}

	for i := range stats {
		stats[i].Percent = percent(stats[i].Count, total)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// TimeOfDay buckets week entries by local hour.
func TimeOfDay(weekEntries []models.JournalEntry, loc *time.Location) TimeOfDayStats {
	var s TimeOfDayStats
	for _, e := range weekEntries {
		hour := e.Created.In(loc).Hour()
		switch {
		case hour >= 5 && hour < 12:
			s.Morning.Count++
		case hour >= 12 && hour < 17:
			s.Afternoon.Count++
		case hour >= 17 && hour < 21:
			s.Evening.Count++
		default:
			s.Night.Count++
		}
	}

	total := len(weekEntries)
	if total < 1 {
		total = 1
	}
	s.Morning.Percent = percent(s.Morning.Count, total)
	s.Afternoon.Percent = percent(s.Afternoon.Count, total)
	s.Evening.Percent = percent(s.Evening.Count, total)
	s.Night.Percent = percent(s.Night.Count, total)
	return s
}

// DayOfWeek counts month entries per local weekday, 0=Sunday.
func DayOfWeek(monthEntries []models.JournalEntry, loc *time.Location) DayOfWeekStats {
	var s DayOfWeekStats
	for _, e := range monthEntries {
		s.Counts[int(e.Created.In(loc).Weekday())]++
	}
	return s
}

// Streak computes capture streaks over all entries. The current streak walks
// backward day by day from today (or yesterday, when today has no entry yet)
// until a gap; the longest streak is the maximum consecutive-day run across
// the whole history.
func Streak(entries []models.JournalEntry, now time.Time) StreakInfo {
	if len(entries) == 0 {
		return StreakInfo{}
	}

	loc := now.Location()
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[dayKey(e.Created.In(loc))] = true
	}

	today := timerange.StartOfDay(now)
	info := StreakInfo{Active: days[dayKey(today)]}

	cursor := today
	if !info.Active {
		cursor = today.AddDate(0, 0, -1)
	}
	for days[dayKey(cursor)] {
		info.Current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	run := 0
	var prev time.Time
	for i, k := range keys {
		day, err := time.ParseInLocation("2006-01-02", k, loc)
		if err != nil {
			continue
		}
		if i > 0 && day.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > info.Longest {
			info.Longest = run
		}
		prev = day
	}
	return info
}

// Trend compares entry counts between this week and last week.
// With no baseline (last week zero), any activity reads as a 100% rise.
func Trend(entries []models.JournalEntry, now time.Time) TrendInfo {
	ranges := timerange.Resolve(now)
	loc := now.Location()

	info := TrendInfo{
		ThisWeek: len(filter(entries, ranges.ThisWeek, loc)),
		LastWeek: len(filter(entries, ranges.LastWeek, loc)),
	}

	change := 0
	switch {
	case info.LastWeek == 0 && info.ThisWeek > 0:
		change = 100
	case info.LastWeek == 0:
		change = 0
	default:
		change = percent(info.ThisWeek-info.LastWeek, info.LastWeek)
	}

	switch {
	case change > 0:
		info.Direction = TrendUp
	case change < 0:
		info.Direction = TrendDown
	default:
		info.Direction = TrendSame
	}
	if change < 0 {
		change = -change
	}
	info.ChangePercent = change
	return info
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// percent computes round(count/total*100); a zero total resolves to 0.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
