package cli

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/sjha2048/worthkeeping.app/internal/service"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// backfillProgressMsg carries batch progress from the backfill goroutine.
type backfillProgressMsg struct {
	done  int
	total int
}

// backfillDoneMsg carries the final result.
type backfillDoneMsg struct {
	result *service.BackfillResult
	err    error
}

// progressModel is the bubbletea model for backfill progress.
type progressModel struct {
	progress progress.Model
	theme    Theme
	done     int
	total    int
	result   *service.BackfillResult
	finished bool
	quitting bool
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(total int) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		progress: prog,
		total:    total,
		theme:    defaultTheme,
	}
}

// Init returns the initial command.
func (m progressModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case backfillProgressMsg:
		m.done = msg.done
		m.total = msg.total
		return m, nil

	case backfillDoneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.finished || m.quitting {
		return m.finalView()
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}

	status := m.theme.statusStyle().Render("[embedding]")
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d entries", m.done, m.total)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nCancelled. Run 'worthkeeping embed' again to resume.\n")
	}

	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Backfill failed: %s\n", m.err))
	}

	if m.result != nil {
		r := m.result
		var output string
		output += m.theme.completedStyle().Render("✓ Completed") + "\n\n"
		output += fmt.Sprintf("  Entries scanned:  %d\n", r.Scanned)
		output += fmt.Sprintf("  Entries embedded: %d\n", r.Embedded)
		if r.Failed > 0 {
			output += fmt.Sprintf("  Entries failed:   %d\n", r.Failed)
		}
		if len(r.Errors) > 0 {
			output += m.theme.errorStyle().Render(fmt.Sprintf("\nWarnings (%d):\n", len(r.Errors)))
			for _, e := range r.Errors {
				output += fmt.Sprintf("  • %s\n", e)
			}
		}
		return output
	}

	return m.theme.completedStyle().Render("✓ Completed\n")
}

// RunBackfillProgress runs the backfill under an interactive progress UI.
// The backfill itself runs in a goroutine and reports batches through the
// program's message loop.
func RunBackfillProgress(run func(onProgress service.ProgressFunc) (*service.BackfillResult, error), total int) (*service.BackfillResult, error) {
	model := newProgressModel(total)
	p := tea.NewProgram(model)

	go func() {
		result, err := run(func(done, total int) {
			p.Send(backfillProgressMsg{done: done, total: total})
		})
		p.Send(backfillDoneMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(progressModel); ok {
		if m.quitting {
			return m.result, nil
		}
		return m.result, m.err
	}
	return nil, nil
}
