// Package report renders almanac events as text tables or as JSON, YAML
// or TOML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatTOML
)

var formatNames = [...]string{
	FormatText: "text",
	FormatJSON: "json",
	FormatYAML: "yaml",
	FormatTOML: "toml",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat parses "text", "json", "yaml" or "toml".
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "txt", "table":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	}
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown output format %q (want text, json, yaml or toml)", s)
}

// Record is one dated almanac entry.
type Record struct {
	Time   time.Time          `json:"time" yaml:"time" toml:"time"`
	Event  string             `json:"event" yaml:"event" toml:"event"`
	Body   string             `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`
	Detail string             `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
	Values map[string]float64 `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
}

// Site is the observer a document was computed for.
type Site struct {
	Name      string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
	Height    float64 `json:"height_m" yaml:"height_m" toml:"height_m"`
}

// Document is a titled list of records.
type Document struct {
	Title    string   `json:"title" yaml:"title" toml:"title"`
	Observer *Site    `json:"observer,omitempty" yaml:"observer,omitempty" toml:"observer,omitempty"`
	Events   []Record `json:"events" yaml:"events" toml:"events"`
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatText:
		return WriteText(w, doc)
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatTOML:
		return WriteTOML(w, doc)
	default:
		return fmt.Errorf("unknown output format %v", f)
	}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	if doc.Events == nil {
		doc.Events = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteYAML writes doc as a YAML document.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteTOML writes doc as TOML, with one [[events]] table per record.
func WriteTOML(w io.Writer, doc Document) error {
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

const (
	ruleWidth   = 80
	tableLayout = "%-19s  %-24s  %-8s  %s"
	timeLayout  = "2006-01-02 15:04:05"
)

// WriteText writes doc as a plain table. Styling is applied only when w
// is a color terminal.
func WriteText(w io.Writer, doc Document) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("60"))
	rule := dimStyle.Render(strings.Repeat("─", ruleWidth))

	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(titleStyle.Render(doc.Title))
		b.WriteString("\n")
	}
	if doc.Observer != nil {
		b.WriteString("Observer: " + FormatSite(*doc.Observer) + "\n")
	}
	b.WriteString(rule + "\n")

	if len(doc.Events) == 0 {
		b.WriteString("No events\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(row("Time (UTC)", "Event", "Body", "Detail"))
	b.WriteString(rule + "\n")
	for _, rec := range doc.Events {
		b.WriteString(row(rec.Time.UTC().Format(timeLayout), rec.Event, truncateStr(rec.Body, 8), rec.Detail))
	}

	noun := "events"
	if len(doc.Events) == 1 {
		noun = "event"
	}
	fmt.Fprintf(&b, "\n%d %s\n", len(doc.Events), noun)

	_, err := io.WriteString(w, b.String())
	return err
}

func row(cols ...any) string {
	return strings.TrimRight(fmt.Sprintf(tableLayout, cols...), " ") + "\n"
}

// FormatSite renders a site as "Name  36.970° N  87.670° W  170 m".
func FormatSite(s Site) string {
	coords := fmt.Sprintf("%s  %.0f m", formatLatLon(s.Latitude, s.Longitude), s.Height)
	if s.Name == "" {
		return coords
	}
	return s.Name + "  " + coords
}

func formatLatLon(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.3f° %s  %.3f° %s", abs(lat), ns, abs(lon), ew)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
