// Package output provides output formatting.
// This package produces human and machine-readable reports of an estimate.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"webtoq-cost/core/advisor"
	"webtoq-cost/core/cost"
	"webtoq-cost/core/pricing"
	"webtoq-cost/core/usage"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is one row per service for spreadsheets
	FormatCSV Format = "csv"
)

// Formats returns every supported format
func Formats() []Format {
	return []Format{FormatCLI, FormatJSON, FormatCSV}
}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want cli, json or csv)", s)
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything one run produces
type Report struct {
	// RunID identifies this run in logs and API responses
	RunID string `json:"run_id"`

	// GeneratedAt is when the report was built
	GeneratedAt time.Time `json:"generated_at"`

	// Scenario is the preset name, empty for ad hoc estimates
	Scenario string `json:"scenario,omitempty"`

	// Title is a human-readable heading
	Title string `json:"title,omitempty"`

	// Warning is a scenario caveat shown above the breakdown
	Warning string `json:"warning,omitempty"`

	// Estimate is the priced workload
	Estimate *cost.Estimate `json:"estimate"`

	// Pricing identifies the rate card used
	Pricing pricing.Snapshot `json:"pricing"`

	// Recommendations are advisor output, in display order
	Recommendations []advisor.Recommendation `json:"recommendations,omitempty"`

	// CacheComparison prices both cache modes
	CacheComparison *advisor.CacheComparison `json:"cache_comparison,omitempty"`

	// Projection compares against a scaled workload
	Projection *cost.Projection `json:"projection,omitempty"`

	// Assumptions documents the model constants
	Assumptions []usage.Assumption `json:"assumptions,omitempty"`
}

// NewReport wraps an estimate with a fresh run ID and timestamp
func NewReport(est *cost.Estimate, snapshot pricing.Snapshot) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Estimate:    est,
		Pricing:     snapshot,
	}
	if est != nil {
		r.Assumptions = est.Assumptions.Describe()
	}
	return r
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the given formatters
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter, len(formatters))}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

// DefaultRegistry holds the cli, json and csv formatters
func DefaultRegistry(opts CLIOptions) *Registry {
	return NewRegistry(NewCLIFormatter(opts), NewJSONFormatter(true), NewCSVFormatter())
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// All returns every registered formatter, ordered by format name
func (r *Registry) All() []Formatter {
	all := make([]Formatter, 0, len(r.formatters))
	for _, f := range r.formatters {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Format() < all[j].Format() })
	return all
}

// Render looks up a formatter and renders the report
func (r *Registry) Render(w io.Writer, format Format, report *Report) error {
	f, ok := r.Get(format)
	if !ok {
		return fmt.Errorf("no formatter registered for %q", format)
	}
	return f.Render(w, report)
}

// Money formats an amount as $1,234.56
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + Money(d.Neg())
	}
	return "$" + humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// Percent formats a percentage with one decimal
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
