package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be hidden at normal verbosity, got %q", buf.String())
	}

	w.SetVerbosity(0)
	w.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be hidden when quiet, got %q", buf.String())
	}

	w.SetVerbosity(2)
	w.Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("debug missing at verbose level: %q", buf.String())
	}
}

func TestNoColorIsPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Header("Cost")
	w.Success("ok")
	w.Warning("careful")
	w.Error("bad")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("no-color output contains escape codes: %q", buf.String())
	}
	for _, want := range []string{"━━━ Cost ━━━", "✓ ok", "⚠ careful", "✗ bad"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Service", "Monthly").AlignRight(1)
	table.AddRow("Lambda", "$6.22")
	table.AddRow("ElastiCache", "$292.00", "ignored")
	table.SetFooter("Total", "$298.22")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Service     │ Monthly" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "Lambda      │   $6.22" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[5] != "Total       │ $298.22" {
		t.Errorf("footer = %q", lines[5])
	}
}

func TestCostSummaryMarginRating(t *testing.T) {
	tests := []struct {
		rating string
		icon   string
	}{
		{"excellent", "✓"},
		{"acceptable", "⚠"},
		{"low", "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewWriter(&buf, true).NewCostSummary()
			s.MonthlyTotal = "$794.51"
			s.YearlyTotal = "$9,534.13"
			s.Margin = "84.1%"
			s.MarginRating = tt.rating
			s.Render()

			out := buf.String()
			if !strings.Contains(out, "Monthly: $794.51") {
				t.Errorf("missing monthly total:\n%s", out)
			}
			if !strings.Contains(out, tt.icon+" Margin: 84.1% ("+tt.rating+")") {
				t.Errorf("missing margin line:\n%s", out)
			}
		})
	}
}

func TestCostDiff(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, true).NewCostDiff()
	d.Changed = []DiffItem{{Label: "Lambda", OldCost: "$6.22", NewCost: "$12.44", Change: "$6.22", IsIncrease: true}}
	d.TotalChange = "$57.90"
	d.IsIncrease = true
	d.Render()

	out := buf.String()
	if !strings.Contains(out, "Lambda: $6.22 → $12.44 (+$6.22)") {
		t.Errorf("missing change line:\n%s", out)
	}
	if !strings.Contains(out, "Total Change: +$57.90") {
		t.Errorf("missing total:\n%s", out)
	}
}
