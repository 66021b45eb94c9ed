// Package cmd - scenario commands
package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"webtoq-cost/core/output"
	"webtoq-cost/core/scenario"
	"webtoq-cost/core/ui"
	"webtoq-cost/internal/config"
	"webtoq-cost/internal/errors"
)

var (
	scenariosFile   string
	scenarioFormat  string
	scenarioProject float64
	scenarioCompare bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "List and run named estimation presets",
	Long: `Scenarios are named workloads with pinned infrastructure choices.

Built-in presets are base, medio, alto, webtoq and burstable. Extra scenarios
can be loaded from an HCL file with --file.`,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadScenarios()
		if err != nil {
			return err
		}

		out := ui.NewWriter(cmd.OutOrStdout(), noColor || config.Get().Output.NoColor)
		table := out.NewTable("Name", "Title", "Agents", "Description").AlignRight(2)
		for _, s := range registry.List() {
			table.AddRow(s.Name, s.Title, humanize.Comma(int64(s.Workload.AgentCount)), s.Description)
		}
		table.Render()
		return nil
	},
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Estimate a scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadScenarios()
		if err != nil {
			return err
		}
		s, err := registry.Get(args[0])
		if err != nil {
			return err
		}

		opts := output.ReportOptions{
			Scenario:     s.Name,
			Title:        s.Title,
			Warning:      s.Warning,
			CompareCache: scenarioCompare,
		}
		if cmd.Flags().Changed("project") {
			if scenarioProject <= 0 {
				return errors.InvalidInput("project", "growth factor must be positive, got %v", scenarioProject)
			}
			g := decimal.NewFromFloat(scenarioProject)
			opts.ProjectGrowth = &g
		}

		builder, err := newBuilder()
		if err != nil {
			return err
		}
		report, err := builder.Build(s.Request(), opts)
		if err != nil {
			return err
		}
		return render(cmd, report, scenarioFormat)
	},
}

func init() {
	scenarioCmd.PersistentFlags().StringVar(&scenariosFile, "file", "", "HCL file with extra scenarios")
	scenarioRunCmd.Flags().StringVarP(&scenarioFormat, "format", "f", "", "output format (cli, json, csv)")
	scenarioRunCmd.Flags().Float64Var(&scenarioProject, "project", 0, "also project costs with agents scaled by this factor")
	scenarioRunCmd.Flags().BoolVar(&scenarioCompare, "compare-cache", false, "compare serverless and provisioned cache costs")

	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioRunCmd)
}

// loadScenarios returns the presets plus any scenarios from --file
func loadScenarios() (*scenario.Registry, error) {
	registry := scenario.Default()
	if scenariosFile == "" {
		return registry, nil
	}
	if _, err := registry.LoadFile(scenariosFile); err != nil {
		return nil, err
	}
	return registry, nil
}
