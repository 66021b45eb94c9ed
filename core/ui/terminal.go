// Package ui - Terminal user interface
// Styled CLI output: headers, status lines, tables and cost panels.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary = lipgloss.Color("#33A8FF")
	Muted   = lipgloss.Color("#6B7280")
	Green   = lipgloss.Color("#4ADE80")
	Yellow  = lipgloss.Color("#F59E0B")
	Red     = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Primary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 2)
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// style applies a style if color is enabled
func (w *Writer) style(s lipgloss.Style, text string) string {
	if w.noColor {
		return text
	}
	return s.Render(text)
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

func (w *Writer) line(s string) {
	fmt.Fprintln(w.out, s)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.line("")
	w.line(w.style(HeaderStyle, "━━━ "+title+" ━━━"))
	w.line("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.line(w.style(SubHeaderStyle, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.line(w.style(SuccessStyle, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.line(w.style(WarningStyle, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.line(w.style(ErrorStyle, "✗ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.line(w.style(InfoStyle, "ℹ ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.line(w.style(MutedStyle, "  "+fmt.Sprintf(format, args...)))
}

// Muted prints a dimmed line
func (w *Writer) Muted(format string, args ...interface{}) {
	w.line(w.style(MutedStyle, fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
	footer  []string
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   map[int]bool{},
	}
}

// AlignRight right-aligns the given columns (numbers)
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

// SetFooter sets a bold row rendered below a separator
func (t *Table) SetFooter(cells ...string) {
	t.footer = t.fit(cells)
}

// fit pads or truncates cells to the header count and widens columns
func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := lipgloss.Width(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	return row
}

func (t *Table) format(row []string) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		pad := strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, " │ ")
}

func (t *Table) separator() string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

// Render prints the table
func (t *Table) Render() {
	t.w.line(t.w.style(SubHeaderStyle, t.format(t.headers)))
	t.w.line(t.separator())
	for _, row := range t.rows {
		t.w.line(t.format(row))
	}
	if t.footer != nil {
		t.w.line(t.separator())
		t.w.line(t.w.style(SubHeaderStyle, t.format(t.footer)))
	}
}

// CostSummary renders the headline numbers of an estimate
type CostSummary struct {
	w            *Writer
	Title        string
	MonthlyTotal string
	YearlyTotal  string
	CostPerAgent string
	Margin       string
	MarginRating string
	Tier         string
}

// NewCostSummary creates a cost summary
func (w *Writer) NewCostSummary() *CostSummary {
	return &CostSummary{w: w, Title: "Cost Estimate"}
}

// Render prints the cost summary
func (s *CostSummary) Render() {
	s.w.Header(s.Title)

	lines := []string{
		s.w.style(SuccessStyle.Bold(true), "Monthly: "+s.MonthlyTotal),
		s.w.style(MutedStyle, "Yearly:  "+s.YearlyTotal),
	}
	if s.CostPerAgent != "" {
		lines = append(lines, "Per agent: "+s.CostPerAgent)
	}
	if s.Tier != "" {
		lines = append(lines, "Tier: "+s.Tier)
	}
	body := strings.Join(lines, "\n")

	if s.w.noColor {
		s.w.line(body)
	} else {
		s.w.line(PanelStyle.Render(body))
	}

	if s.Margin == "" {
		return
	}
	s.w.line("")
	switch s.MarginRating {
	case "excellent":
		s.w.Success("Margin: %s (%s)", s.Margin, s.MarginRating)
	case "acceptable":
		s.w.Warning("Margin: %s (%s)", s.Margin, s.MarginRating)
	default:
		s.w.Error("Margin: %s (%s)", s.Margin, s.MarginRating)
	}
}

// CostDiff shows how service costs move between two estimates
type CostDiff struct {
	w           *Writer
	Title       string
	Changed     []DiffItem
	TotalChange string
	IsIncrease  bool
}

// DiffItem is a single diff item
type DiffItem struct {
	Label      string
	OldCost    string
	NewCost    string
	Change     string
	IsIncrease bool
}

// NewCostDiff creates a diff view
func (w *Writer) NewCostDiff() *CostDiff {
	return &CostDiff{w: w, Title: "Cost Changes"}
}

// Render prints the diff; unchanged services are skipped
func (d *CostDiff) Render() {
	d.w.Header(d.Title)

	if len(d.Changed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Changed (%d)", len(d.Changed)))
		for _, item := range d.Changed {
			arrow := d.w.style(WarningStyle, "→")
			change := item.Change
			if item.IsIncrease {
				change = d.w.style(ErrorStyle, "+"+change)
			} else {
				change = d.w.style(SuccessStyle, change)
			}
			d.w.Println("  %s: %s %s %s (%s)", item.Label, item.OldCost, arrow, item.NewCost, change)
		}
		d.w.line("")
	}

	d.w.line(strings.Repeat("─", 40))
	total := d.w.style(SuccessStyle, d.TotalChange)
	if d.IsIncrease {
		total = d.w.style(ErrorStyle, "+"+d.TotalChange)
	}
	d.w.line(d.w.style(SubHeaderStyle, "Total Change: ") + total)
}
