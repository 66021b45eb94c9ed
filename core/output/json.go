package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes the full report as JSON. Amounts are decimal strings.
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render encodes the report
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	if report == nil || report.Estimate == nil {
		return fmt.Errorf("report has no estimate")
	}
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
