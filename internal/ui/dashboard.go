package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const eventTimeLayout = "Jan 02 15:04"

// DashboardModel lists the upcoming almanac events.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	m.lastErr = nil
	if n := len(m.upcoming()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

func (m DashboardModel) upcoming() []report.Record {
	if m.snapshot.Data == nil {
		return nil
	}
	return m.snapshot.Data.Upcoming
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		count := len(m.upcoming())

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < count-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if count > 0 {
				m.cursor = count - 1
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.Data == nil {
		if m.lastErr == nil {
			b.WriteString("Computing almanac...\n")
		}
		return b.String()
	}

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderEventsTable())

	return b.String()
}

func (m DashboardModel) renderSummary() string {
	data := m.snapshot.Data
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tonight"))
	b.WriteString("\n")
	b.WriteString("  " + mutedStyle.Render(report.FormatSite(*report.SiteFrom(data.Observer))))
	b.WriteString("\n")

	// The builder already validated data.At.
	at, _ := astro.TimeFromGo(data.At)
	phase := report.MoonPhase(at, data.MoonPhase)
	b.WriteString(fmt.Sprintf("  Moon %s %s\n", m.renderPhaseBar(illumination(data.MoonPhase), 10), phase.Detail))

	return b.String()
}

// illumination returns the lit fraction of the Moon's disc for a phase
// angle in degrees.
func illumination(phaseDeg float64) float64 {
	return (1 - math.Cos(phaseDeg*math.Pi/180)) / 2
}

func (m DashboardModel) renderPhaseBar(frac float64, width int) string {
	filled := int(math.Round(frac * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("253"))
	return "[" + style.Render(bar) + "]"
}

func (m DashboardModel) renderEventsTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Upcoming"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-12s %-11s %-8s %-24s %s", "Time (UTC)", "In", "Body", "Event", "Detail")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	recs := m.upcoming()
	if len(recs) == 0 {
		b.WriteString("  No upcoming events\n")
		return b.String()
	}

	maxRows := m.height - 10 // Leave room for header and summary
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(recs))

	for i := startIdx; i < endIdx; i++ {
		rec := recs[i]
		row := fmt.Sprintf("%-12s %-11s %-8s %-24s %s",
			rec.Time.Format(eventTimeLayout),
			formatCountdown(rec.Time.Sub(m.snapshot.Data.At)),
			truncate(rec.Body, 8),
			truncate(rec.Event, 24),
			truncate(rec.Detail, 40),
		)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(recs) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d events", startIdx+1, endIdx, len(recs)))
	}

	return b.String()
}

// formatCountdown renders a duration as "3d 04h", "5h 12m" or "42m".
func formatCountdown(d time.Duration) string {
	if d < 0 {
		return "passed"
	}
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	mins := int(d/time.Minute) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// GetSelectedEvent returns the currently selected event, if any.
func (m DashboardModel) GetSelectedEvent() *report.Record {
	recs := m.upcoming()
	if m.cursor < 0 || m.cursor >= len(recs) {
		return nil
	}
	rec := recs[m.cursor]
	return &rec
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
