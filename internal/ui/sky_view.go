package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/state"
)

const (
	// Field of view in degrees
	fovAz = 120.0 // horizontal FOV
	fovEl = 60.0  // vertical FOV

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	// Body glyphs
	glyphBody        = '✦'
	glyphBodyFocused = '◆'
	glyphSun         = '☼'
	glyphMoon        = '☾'

	// Body colors
	colorBody        = "#d0c8ff"
	colorBodyFocused = "229" // bright gold
	colorSun         = "220"
	colorMoon        = "253"

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	// Star colors (grayscale to not compete with the planets)
	colorStarBright  = "255" // bright white
	colorStarMedium  = "250" // medium gray
	colorStarDim     = "244" // dim gray
	colorStarVeryDim = "240" // very dim gray
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only focused body
	LabelAll                      // All bodies
)

// ClassFilter limits the sky view to one group of bodies.
type ClassFilter int

const (
	FilterAll ClassFilter = iota
	FilterLuminaries
	FilterPlanets
)

func (f ClassFilter) String() string {
	switch f {
	case FilterLuminaries:
		return "Sun & Moon"
	case FilterPlanets:
		return "Planets"
	default:
		return "All Bodies"
	}
}

func (f ClassFilter) match(b ephem.Body) bool {
	info, err := b.Info()
	if err != nil {
		return false
	}
	switch f {
	case FilterLuminaries:
		return info.Class == ephem.ClassLuminary
	case FilterPlanets:
		return info.Class != ephem.ClassLuminary
	default:
		return true
	}
}

// SkyViewModel renders the sky dome with the Sun, Moon and planets.
type SkyViewModel struct {
	width  int
	height int

	// Camera position (center of view)
	camAz float64
	camEl float64

	// Animation state
	animating   bool
	animStartAz float64
	animStartEl float64
	animTargAz  float64
	animTargEl  float64
	animStart   time.Time

	focusIdx int
	objects  []state.SkyObject

	observer astro.Observer
	at       time.Time
	hasData  bool

	filter    ClassFilter
	labelMode LabelMode

	// Star catalog (loaded once)
	starCatalog astro.StarCatalog
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:       180,
		camEl:       30,
		labelMode:   LabelFocused,
		starCatalog: astro.DefaultStarCatalog(),
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	if snapshot.Data == nil {
		return m
	}
	m.objects = snapshot.Data.Sky
	m.observer = snapshot.Data.Observer
	m.at = snapshot.Data.At
	m.hasData = true

	if m.focusIdx >= len(m.objects) {
		m.focusIdx = 0
	}

	// If not animating, snap camera to focused body
	if !m.animating && len(m.objects) > 0 {
		m.camAz, m.camEl = cameraTarget(m.objects[m.focusIdx].Horizon)
	}
	return m
}

// cameraTarget keeps the horizon in frame when the target has set.
func cameraTarget(h astro.HorizontalCoords) (az, el float64) {
	el = h.AltDeg
	if el < fovEl/2-5 {
		el = fovEl/2 - 5
	}
	return h.AzDeg, el
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return m.focusPrev()
		case "down", "j":
			return m.focusNext()
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "c":
			m.filter = (m.filter + 1) % 3
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if len(m.objects) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.objects)
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if len(m.objects) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.objects) - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	if m.focusIdx >= len(m.objects) {
		return m, nil
	}

	m.animating = true
	m.animStartAz = m.camAz
	m.animStartEl = m.camEl
	m.animTargAz, m.animTargEl = cameraTarget(m.objects[m.focusIdx].Horizon)
	m.animStart = time.Now()

	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		m.camEl = m.animTargEl
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m.camAz = lerpAngle(m.animStartAz, m.animTargAz, t)
	m.camEl = lerp(m.animStartEl, m.animTargEl, t)

	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4
	viewWidth := m.width

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(viewWidth, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))               // muted purple
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBody))

	title := titleStyle.Render("Sky View")

	filter := dimStyle.Render(m.filter.String())
	if m.filter != FilterAll {
		filter = accentStyle.Render(m.filter.String())
	}

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° El:%.0f°", m.camAz, m.camEl))

	return fmt.Sprintf("%s | %s | %s | %s", title, filter, labelStr, compass)
}

func (m SkyViewModel) renderStatus() string {
	if len(m.objects) == 0 || m.focusIdx >= len(m.objects) {
		return "No bodies computed yet"
	}

	obj := m.objects[m.focusIdx]
	h := obj.Horizon

	line1 := fmt.Sprintf(">>> %s | Az:%.1f° Alt:%.1f° | RA %s Dec %+.1f° | %s",
		obj.Body, h.AzDeg, h.AltDeg, formatRA(h.RA), h.Dec, elevationLabel(h.AltDeg))

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	status := accentStyle.Render(line1)

	if sep, ok := m.sunSeparation(obj); ok {
		status += "\n" + sunSeparationStyle(sep).Render(fmt.Sprintf("    %.1f° from the Sun", sep))
	}
	return status
}

// sunSeparation returns the angle between obj and the Sun.
func (m SkyViewModel) sunSeparation(obj state.SkyObject) (float64, bool) {
	if obj.Body == ephem.Sun {
		return 0, false
	}
	for _, o := range m.objects {
		if o.Body == ephem.Sun {
			return astro.AngularSeparation(o.Horizon.RA*15, o.Horizon.Dec, obj.Horizon.RA*15, obj.Horizon.Dec), true
		}
	}
	return 0, false
}

func sunSeparationStyle(sep float64) lipgloss.Style {
	switch astro.GetSunSeparationTier(sep) {
	case astro.SunSepWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	case astro.SunSepCaution:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorBody))
	}
}

func elevationLabel(alt float64) string {
	switch astro.GetElevationTier(alt) {
	case astro.ElevationNone:
		return "below horizon"
	case astro.ElevationLow:
		return "low"
	case astro.ElevationMedium:
		return "mid-sky"
	default:
		return "high"
	}
}

// formatRA formats hours as "12h34m".
func formatRA(hours float64) string {
	total := int(math.Round(hours*60)) % (24 * 60)
	return fmt.Sprintf("%02dh%02dm", total/60, total%60)
}

// bodyPos tracks a body's screen position for label rendering
type bodyPos struct {
	x, y       int
	name       string
	isFocused  bool
	labelStart int
	labelEnd   int
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236" // very dark background
		}
	}

	horizonY := height - 2

	for _, star := range m.visibleStars() {
		x, y, visible := m.projectToScreen(star.AzDeg, star.AltDeg, width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}
		glyph, color := m.starGlyph(star.mag)
		canvas[y][x] = glyph
		colors[y][x] = color
	}

	// Draw horizon line (purple tint)
	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = "60"
	}

	m.drawCardinal(canvas, colors, width, height, "N", 0)
	m.drawCardinal(canvas, colors, width, height, "E", 90)
	m.drawCardinal(canvas, colors, width, height, "S", 180)
	m.drawCardinal(canvas, colors, width, height, "W", 270)

	var positions []bodyPos
	for i, obj := range m.objects {
		if !m.filter.match(obj.Body) || obj.Horizon.AltDeg <= 0 {
			continue
		}
		x, y, visible := m.projectToScreen(obj.Horizon.AzDeg, obj.Horizon.AltDeg, width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}

		isFocused := i == m.focusIdx
		sym, color := bodyGlyph(obj.Body, isFocused)
		canvas[y][x] = sym
		colors[y][x] = color

		positions = append(positions, bodyPos{x: x, y: y, name: obj.Body.String(), isFocused: isFocused})
	}

	m.renderLabels(canvas, colors, width, horizonY, positions)

	// Observer marker at bottom center
	stationX := width / 2
	stationY := height - 1
	if stationY >= 0 && stationX >= 0 && stationX < width {
		canvas[stationY][stationX] = '▲'
		colors[stationY][stationX] = "46"
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func bodyGlyph(b ephem.Body, focused bool) (rune, lipgloss.Color) {
	if focused {
		return glyphBodyFocused, colorBodyFocused
	}
	switch b {
	case ephem.Sun:
		return glyphSun, colorSun
	case ephem.Moon:
		return glyphMoon, colorMoon
	default:
		return glyphBody, colorBody
	}
}

type starPos struct {
	astro.HorizontalCoords
	mag float64
}

// visibleStars places the catalog stars in the observer's sky at the
// almanac instant. Catalog positions are J2000; the precession since then
// is far below one screen cell.
func (m SkyViewModel) visibleStars() []starPos {
	if !m.hasData {
		return nil
	}
	t, err := astro.TimeFromGo(m.at)
	if err != nil {
		return nil
	}
	var out []starPos
	for _, star := range m.starCatalog.Stars {
		h, err := astro.Horizon(t, m.observer, star.RA, star.Dec, astro.NormalRefraction)
		if err != nil || h.AltDeg <= 0 {
			continue
		}
		out = append(out, starPos{HorizontalCoords: h, mag: star.Mag})
	}
	return out
}

// renderLabels draws body labels on the canvas based on label mode.
// Focused labels take priority in overlapping regions.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		labelLen := len([]rune(pos.name))
		if pos.isFocused {
			labelLen += 2
		}
		pos.labelEnd = pos.labelStart + labelLen
	}

	focusedClaims := make(map[int]map[int]bool) // y -> x -> claimed
	for _, pos := range positions {
		if !pos.isFocused {
			continue
		}
		if focusedClaims[pos.y] == nil {
			focusedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			focusedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelColor := lipgloss.Color(colorBody)
		labelText := pos.name
		if pos.isFocused {
			labelColor = colorBodyFocused
			labelText = "◄ " + pos.name
		}

		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= horizonY {
				continue
			}
			if !pos.isFocused && focusedClaims[pos.y][x] {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}
}

// starGlyph returns the glyph and color for a star of the given magnitude.
func (m SkyViewModel) starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func (m SkyViewModel) drawCardinal(canvas [][]rune, colors [][]lipgloss.Color, width, height int, label string, az float64) {
	x, _, visible := m.projectToScreen(az, 0, width, height)
	if !visible {
		return
	}
	y := height - 2 // horizon line

	if x >= 0 && x < width && y >= 0 && y < height {
		canvas[y][x] = rune(label[0])
		colors[y][x] = "252"
	}
}

// projectToScreen converts az/el to screen coordinates relative to camera
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := el - m.camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	// X: -fovAz/2..+fovAz/2 -> 0..width
	// Y: +fovEl/2..-fovEl/2 -> 0..horizonY
	horizonY := height - 2

	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))

	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
