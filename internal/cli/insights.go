package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show journal statistics",
	Long: `Show a dashboard of journal statistics: entry counts, top sites,
capture streaks, the week-over-week trend and frequent keywords.

Examples:
  worthkeeping insights`,
	RunE: runInsights,
}

// Dashboard styles share the palette of the progress display.
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
)

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, _, insightsSvc, err := getServices(false)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	dash, err := insightsSvc.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("compute insights: %w", err)
	}

	fmt.Println(renderDashboard(dash))
	return nil
}

func renderDashboard(d *insights.LocalInsights) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Journal Insights") + "\n\n")

	b.WriteString(fmt.Sprintf("Entries: %d total, %d today, %d this week, %d this month\n",
		d.TotalEntries, d.TodayCount, d.WeekCount, d.MonthCount))

	if d.TotalEntries == 0 {
		b.WriteString(dimStyle.Render("\nNothing logged yet. Capture something with 'worthkeeping add'.\n"))
		return b.String()
	}

	b.WriteString(renderStreak(d.Streak))
	b.WriteString(renderTrend(d.Trend))

	if len(d.Sites) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Top sites this week") + "\n")
		for _, s := range d.Sites {
			b.WriteString(fmt.Sprintf("  %-24s %s %d (%d%%)\n", s.Site, bar(s.Percent), s.Count, s.Percent))
		}
	}

	if d.WeekCount > 0 {
		b.WriteString("\n" + sectionStyle.Render("Time of day this week") + "\n")
		tod := d.TimeOfDay
		for _, p := range []struct {
			name string
			stat insights.PeriodStat
		}{
			{"Morning", tod.Morning},
			{"Afternoon", tod.Afternoon},
			{"Evening", tod.Evening},
			{"Night", tod.Night},
		} {
			b.WriteString(fmt.Sprintf("  %-10s %s %d (%d%%)\n", p.name, bar(p.stat.Percent), p.stat.Count, p.stat.Percent))
		}
	}

	if d.MonthCount > 0 {
		b.WriteString("\n" + sectionStyle.Render("Day of week this month") + "\n  ")
		days := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
		for i, count := range d.DayOfWeek.Counts {
			b.WriteString(fmt.Sprintf("%s:%-3d ", days[i], count))
		}
		b.WriteString("\n")
	}

	if len(d.Keywords) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Frequent keywords") + "\n")
		b.WriteString("  " + strings.Join(d.Keywords, ", ") + "\n")
	}

	return b.String()
}

func renderStreak(s insights.StreakInfo) string {
	if s.Longest == 0 {
		return ""
	}
	state := dimStyle.Render("(broken)")
	if s.Active {
		state = sectionStyle.Render("(active)")
	}
	return fmt.Sprintf("Streak:  %d days %s, longest %d\n", s.Current, state, s.Longest)
}

func renderTrend(t insights.TrendInfo) string {
	switch t.Direction {
	case insights.TrendUp:
		return fmt.Sprintf("Trend:   up %d%% vs last week (%d vs %d)\n", t.ChangePercent, t.ThisWeek, t.LastWeek)
	case insights.TrendDown:
		return fmt.Sprintf("Trend:   down %d%% vs last week (%d vs %d)\n", t.ChangePercent, t.ThisWeek, t.LastWeek)
	default:
		return fmt.Sprintf("Trend:   flat vs last week (%d vs %d)\n", t.ThisWeek, t.LastWeek)
	}
}

// bar renders a ten-cell percentage bar.
func bar(percent int) string {
	filled := percent / 10
	if filled > 10 {
		filled = 10
	}
	return barStyle.Render(strings.Repeat("█", filled) + strings.Repeat("░", 10-filled))
}
