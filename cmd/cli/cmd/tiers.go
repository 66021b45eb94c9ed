// Package cmd - tiers command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webtoq-cost/core/tier"
	"webtoq-cost/core/types"
	"webtoq-cost/core/ui"
	"webtoq-cost/internal/config"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the tier breakpoints and default infrastructure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewWriter(cmd.OutOrStdout(), noColor || config.Get().Output.NoColor)
		out.Header("Infrastructure Tiers")

		table := out.NewTable("Tier", "Agents", "Database", "Cache")
		for _, p := range tier.All() {
			table.AddRow(p.Tier.String(), p.AgentRange, describeDatabase(p.Infra.Database), describeCache(p.Infra.Cache))
		}
		table.Render()

		if verbose {
			out.Println("")
			for _, p := range tier.All() {
				out.Println("%-10s %s", p.Tier, p.Description)
			}
		}
		return nil
	},
}

func describeDatabase(db types.DatabaseConfig) string {
	s := fmt.Sprintf("%s, %dGB", db.Instance, db.StorageGB)
	if db.MultiAZ {
		s += ", Multi-AZ"
	}
	return s
}

func describeCache(c types.CacheConfig) string {
	if c.Mode == types.CacheServerless {
		return fmt.Sprintf("serverless %s ECPU, %sh/day", c.ECPU, c.ActiveHoursPerDay)
	}
	s := fmt.Sprintf("%d x %s", c.Nodes, c.Node)
	if c.MultiAZ {
		s += ", Multi-AZ"
	}
	return s
}
