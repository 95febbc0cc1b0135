// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewSky
	ViewLog

	viewCount = 3
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a freshly computed almanac.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a failed recompute.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int // Animation tick for shimmer effects

	// Sub-models
	dashboard DashboardModel
	skyView   SkyViewModel

	// Data snapshot (updated on DataUpdateMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:     stateMgr,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		skyView:   NewSkyViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.dashboard.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "s":
			m.viewMode = ViewSky
		case "3", "e":
			m.viewMode = ViewLog

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 14
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewLog:
		content = m.renderLog()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗       █████╗ ██╗     ███╗   ███╗ █████╗ ███╗   ██╗ █████╗  ██████╗`,
		`  ██║     ██╔════╝      ██╔══██╗██║     ████╗ ████║██╔══██╗████╗  ██║██╔══██╗██╔════╝`,
		`  ██║     ███████╗█████╗███████║██║     ██╔████╔██║███████║██╔██╗ ██║███████║██║     `,
		`  ██║     ╚════██║╚════╝██╔══██║██║     ██║╚██╔╝██║██╔══██║██║╚██╗██║██╔══██║██║     `,
		`  ███████╗███████║      ██║  ██║███████╗██║ ╚═╝ ██║██║  ██║██║ ╚████║██║  ██║╚██████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚═════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Sky Almanac · Rise, Set, Phases & Eclipses | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient,
// running blue, purple, magenta, pink from left to right.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64

	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightness := 1.0 - (yRatio * 0.5)

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	return min(max(int(v), 0), 255)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Almanac", "[2] Sky", "[3] Log"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

// renderLog lists the state events, newest first.
func (m Model) renderLog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Event Log"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing has happened yet"))
		b.WriteString("\n")
		return b.String()
	}

	maxRows := max(m.height-4, 5)
	for i := len(events) - 1; i >= 0 && len(events)-i <= maxRows; i-- {
		e := events[i]
		line := fmt.Sprintf("  %s  %-16s ", e.Timestamp.UTC().Format("Jan 02 15:04:05"), e.Type)
		switch e.Type {
		case state.EventRecomputeFailed:
			b.WriteString(errorStyle.Render(line + e.Message))
		default:
			b.WriteString(rowStyle.Render(line + strings.TrimSpace(e.Record.Body+" "+e.Record.Event)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.snapshot.LastError != nil {
		status = errStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	} else if !m.snapshot.LastCompute.IsZero() {
		next := m.snapshot.LastCompute.Add(m.state.RefreshInterval())
		countdown := max(time.Until(next).Round(time.Second), 0)
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Millisecond).String() + ")")
		}
	} else {
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing almanac...")
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = dimStyle.Render("j/k: focus | l: labels | c: bodies")
	case ViewLog:
		help = dimStyle.Render("tab: switch view | q: quit")
	default:
		help = dimStyle.Render("↑↓: navigate | tab: switch view")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
