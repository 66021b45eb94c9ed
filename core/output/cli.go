package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"webtoq-cost/core/advisor"
	"webtoq-cost/core/cost"
	"webtoq-cost/core/ui"
)

// CLIOptions controls the terminal report
type CLIOptions struct {
	NoColor bool

	// Verbose adds formulas, justifications and assumptions
	Verbose bool
}

// CLIFormatter renders a styled terminal report
type CLIFormatter struct {
	opts CLIOptions
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(opts CLIOptions) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report sections in reading order
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	if report == nil || report.Estimate == nil || report.Estimate.Breakdown == nil {
		return fmt.Errorf("report has no estimate")
	}
	out := ui.NewWriter(w, f.opts.NoColor)
	if f.opts.Verbose {
		out.SetVerbosity(2)
	}
	est := report.Estimate

	title := "WebToQ Cost Estimate"
	if report.Title != "" {
		title += ": " + report.Title
	}
	out.Header(title)
	if report.Warning != "" {
		out.Warning("%s", report.Warning)
		out.Println("")
	}

	f.renderWorkload(out, est)
	f.renderBreakdown(out, est)
	f.renderSummary(out, est)
	f.renderRecommendations(out, report.Recommendations)
	if report.CacheComparison != nil {
		f.renderCacheComparison(out, report.CacheComparison)
	}
	if report.Projection != nil {
		f.renderProjection(out, report.Projection)
	}
	if f.opts.Verbose {
		f.renderAssumptions(out, report)
	}

	out.Println("")
	out.Muted("Pricing: %s %s, effective %s (%.12s)", report.Pricing.Provider, report.Pricing.Region, report.Pricing.Effective, est.PricingHash)
	out.Debug("Run %s at %s", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

func (f *CLIFormatter) renderWorkload(out *ui.Writer, est *cost.Estimate) {
	wl := est.Workload()
	load := est.Load

	out.SubHeader("Workload")
	out.Println("  %s agents x %d clients/day x %d days, %d min sessions",
		humanize.Comma(int64(wl.AgentCount)), wl.ClientsPerAgent, wl.WorkDaysPerMonth, wl.SessionDurationMinutes)
	out.Println("  %s sessions/month (%s/day), %s requests/month",
		humanize.Comma(load.SessionsPerMonth), humanize.Comma(load.SessionsPerDay), humanize.Comma(load.RequestsPerMonth))
	out.Println("  %s peak connections, %s MB cache", humanize.Comma(load.ConcurrentPeakConnections), humanize.Comma(load.CacheStorageMB))
	out.Info("Tier: %s (%s agents)", est.Tier, est.AgentRange)
	out.Println("")
}

func (f *CLIFormatter) renderBreakdown(out *ui.Writer, est *cost.Estimate) {
	b := est.Breakdown

	out.SubHeader("Monthly Breakdown")
	table := out.NewTable("Service", "Configuration", "Monthly", "Share").AlignRight(2, 3)
	for _, line := range b.Lines {
		table.AddRow(line.Label, line.Config, Money(line.Monthly), Percent(b.Share(line.Service)))
	}
	table.SetFooter("Total", "", Money(b.Total), "100.0%")
	table.Render()

	if f.opts.Verbose {
		out.Println("")
		out.SubHeader("Formulas")
		formulas := out.NewTable("Service", "Formula", "Why")
		for _, line := range b.Lines {
			formulas.AddRow(line.Label, line.Formula, line.Justification)
		}
		formulas.Render()
	}
}

func (f *CLIFormatter) renderSummary(out *ui.Writer, est *cost.Estimate) {
	m := est.Metrics

	s := out.NewCostSummary()
	s.Title = "Summary"
	s.MonthlyTotal = Money(est.Breakdown.Total)
	s.YearlyTotal = Money(est.Breakdown.Yearly())
	s.CostPerAgent = fmt.Sprintf("%s (revenue %s)", Money(m.CostPerAgent), Money(m.RevenuePerAgent))
	s.Tier = fmt.Sprintf("%s (%s agents)", est.Tier, est.AgentRange)
	s.Margin = Percent(m.MarginPercent)
	s.MarginRating = string(m.MarginRating)
	s.Render()

	out.Println("  Profit: %s/month on %s revenue", Money(m.Profit), Money(m.Revenue))
	out.Println("  Cost per session: $%s", m.CostPerSession.StringFixed(4))
}

func (f *CLIFormatter) renderRecommendations(out *ui.Writer, recs []advisor.Recommendation) {
	if len(recs) == 0 {
		return
	}
	out.Header("Recommendations")

	for _, r := range recs {
		switch r.Kind {
		case advisor.KindTier:
			out.Info("%s: %s", r.Title, r.Description)
		case advisor.KindWarning:
			out.Warning("%s: %s", r.Title, r.Description)
		default:
			line := fmt.Sprintf("• %s: %s", r.Title, r.Description)
			if r.Savings.IsPositive() {
				line += fmt.Sprintf(" (save %s/month)", Money(r.Savings))
			} else if r.SavingsNote != "" {
				line += fmt.Sprintf(" (%s)", r.SavingsNote)
			}
			out.Println("%s", line)
		}
	}

	if total := advisor.Savings(recs); total.IsPositive() {
		out.Println("")
		out.Success("Potential savings: up to %s/month", Money(total))
	}
}

func (f *CLIFormatter) renderCacheComparison(out *ui.Writer, c *advisor.CacheComparison) {
	out.Header("Cache Modes")
	table := out.NewTable("Mode", "Monthly").AlignRight(1)
	table.AddRow("serverless", Money(c.Serverless))
	table.AddRow("provisioned", Money(c.Provisioned))
	table.Render()
	out.Println("")

	if c.Recommended == c.Current {
		out.Success("Current mode (%s) is the cheaper option", c.Current)
		return
	}
	out.Warning("Switching to %s saves %s/month (%s)", c.Recommended, Money(c.Savings), Percent(c.SavingsPercent()))
}

func (f *CLIFormatter) renderProjection(out *ui.Writer, p *cost.Projection) {
	before := p.Current.Breakdown
	after := p.Projected.Breakdown

	d := out.NewCostDiff()
	d.Title = fmt.Sprintf("Scaling x%s: %s → %s agents",
		p.GrowthFactor, humanize.Comma(int64(p.Current.Workload().AgentCount)), humanize.Comma(int64(p.Projected.Workload().AgentCount)))
	for _, line := range before.Lines {
		next := after.Monthly(line.Service)
		if next.Equal(line.Monthly) {
			continue
		}
		delta := next.Sub(line.Monthly)
		d.Changed = append(d.Changed, ui.DiffItem{
			Label:      line.Label,
			OldCost:    Money(line.Monthly),
			NewCost:    Money(next),
			Change:     Money(delta),
			IsIncrease: delta.IsPositive(),
		})
	}
	d.TotalChange = Money(p.MonthlyDelta)
	d.IsIncrease = p.MonthlyDelta.IsPositive()
	d.Render()

	if p.TierChanged {
		out.Warning("Tier changes from %s to %s", p.Current.Tier, p.Projected.Tier)
	}
	if p.CostPerAgentDecreases {
		out.Success("Cost per agent falls from %s to %s", Money(p.CostPerAgentBefore), Money(p.CostPerAgentAfter))
	} else {
		out.Println("Cost per agent: %s → %s", Money(p.CostPerAgentBefore), Money(p.CostPerAgentAfter))
	}
}

func (f *CLIFormatter) renderAssumptions(out *ui.Writer, report *Report) {
	if len(report.Assumptions) == 0 {
		return
	}
	out.Header("Assumptions")
	table := out.NewTable("Component", "Attribute", "Value", "Unit")
	for _, a := range report.Assumptions {
		table.AddRow(a.Component, a.Attribute, a.Value, a.Unit)
	}
	table.Render()
}
