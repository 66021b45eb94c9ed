package output

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVFormatter writes one row per service, then the totals
type CSVFormatter struct{}

// NewCSVFormatter creates a CSV formatter
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format returns FormatCSV
func (f *CSVFormatter) Format() Format {
	return FormatCSV
}

// Render writes the breakdown. Amounts keep two decimals and no currency symbol.
func (f *CSVFormatter) Render(w io.Writer, report *Report) error {
	if report == nil || report.Estimate == nil || report.Estimate.Breakdown == nil {
		return fmt.Errorf("report has no estimate")
	}
	b := report.Estimate.Breakdown

	cw := csv.NewWriter(w)
	records := [][]string{{"Service", "Configuration", "Monthly Cost", "Percent"}}
	for _, line := range b.Lines {
		records = append(records, []string{
			line.Label,
			line.Config,
			line.Monthly.StringFixed(2),
			b.Share(line.Service).StringFixed(1),
		})
	}
	records = append(records,
		[]string{"Total Monthly", "", b.Total.StringFixed(2), "100.0"},
		[]string{"Total Yearly", "", b.Yearly().StringFixed(2), ""},
		[]string{"Currency", string(b.Currency), "", ""},
		[]string{"Scenario", scenarioName(report), "", ""},
		[]string{"Generated", report.GeneratedAt.Format("2006-01-02"), "", ""},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func scenarioName(report *Report) string {
	if report.Scenario != "" {
		return report.Scenario
	}
	return fmt.Sprintf("custom (%d agents)", report.Estimate.Workload().AgentCount)
}
