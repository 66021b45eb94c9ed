// Package cmd - pricing commands
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webtoq-cost/core/output"
	"webtoq-cost/core/pricing"
	"webtoq-cost/core/ui"
	"webtoq-cost/internal/config"
)

var (
	pricingJSON   bool
	pricingOutput string
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Inspect the active rate card",
	Long: `Inspect or export the rate card used for estimates.

The embedded card is used unless --pricing or the config file names another
HCL file. Export writes the canonical form, which hashes the same as the source.`,
}

var pricingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		if pricingJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(table.View())
		}
		printRates(ui.NewWriter(cmd.OutOrStdout(), noColor || config.Get().Output.NoColor), table)
		return nil
	},
}

var pricingExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active rate card as HCL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		data := pricing.Export(table)
		if pricingOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(pricingOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write rate card: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (sha256 %s)\n", pricingOutput, table.ContentHash())
		return nil
	},
}

func init() {
	pricingShowCmd.Flags().BoolVar(&pricingJSON, "json", false, "print as JSON")
	pricingExportCmd.Flags().StringVarP(&pricingOutput, "output", "o", "", "write to file instead of stdout")

	pricingCmd.AddCommand(pricingShowCmd)
	pricingCmd.AddCommand(pricingExportCmd)
}

func printRates(out *ui.Writer, t *pricing.Table) {
	snap := t.Snapshot()
	out.Header(fmt.Sprintf("Rate Card: %s %s", snap.Provider, snap.Region))
	out.Println("Effective %s, %s", snap.Effective, snap.Currency)
	if snap.Source != "" {
		out.Muted("Source: %s", snap.Source)
	}
	out.Muted("sha256 %s", t.ContentHash())
	out.Println("")

	db := t.Database()
	out.SubHeader("Database instances")
	instances := out.NewTable("Class", "vCPU", "Memory", "Monthly").AlignRight(1, 2, 3)
	for _, in := range t.DatabaseInstances() {
		instances.AddRow(in.Class, fmt.Sprint(in.VCPU), in.MemoryGB.String()+"GB", output.Money(in.Monthly))
	}
	instances.Render()
	out.Println("Storage %s/GB-month, Multi-AZ x%s", output.Money(db.StoragePerGBMonth), db.MultiAZMultiplier)
	out.Println("")

	cache := t.Cache()
	out.SubHeader("Cache nodes")
	nodes := out.NewTable("Type", "Memory", "Monthly", "").AlignRight(1, 2)
	for _, n := range t.CacheNodes() {
		note := ""
		if n.Burstable {
			note = "burstable"
		}
		nodes.AddRow(n.Type, n.MemoryGB.String()+"GB", output.Money(n.Monthly), note)
	}
	nodes.Render()
	out.Println("Serverless $%s/GB-hour storage, $%s/ECPU-hour", cache.ServerlessStoragePerGBHour, cache.ServerlessECPUPerHour)
	out.Println("")

	compute, gw, obj := t.Compute(), t.Gateway(), t.ObjectStorage()
	out.SubHeader("Usage rates")
	rates := out.NewTable("Service", "Rate")
	rates.AddRow("Compute", fmt.Sprintf("$%s/M requests + $%s/GB-second", compute.PerMillionRequests, compute.PerGBSecond))
	rates.AddRow("Gateway", fmt.Sprintf("REST $%s, HTTP $%s, WebSocket $%s per M", gw.RESTPerMillion, gw.HTTPPerMillion, gw.WebSocketPerMillion))
	rates.AddRow("Network", fmt.Sprintf("NAT gateway $%s/month", t.Network().NATGatewayMonthly))
	rates.AddRow("Logging", fmt.Sprintf("min $%s/month, $%s per 100k requests", t.Logging().MinimumMonthly, t.Logging().Per100kRequests))
	rates.AddRow("Email", fmt.Sprintf("%d free, then $%s per 1k", t.Email().FreePerMonth, t.Email().PerThousand))
	rates.AddRow("Object storage", fmt.Sprintf("$%s/GB-month, PUT $%s/1k, GET $%s/1k", obj.StoragePerGBMonth, obj.PutPerThousand, obj.GetPerThousand))
	rates.AddRow("Notification", fmt.Sprintf("%d free, then $%s per M", t.Notification().FreePerMonth, t.Notification().PerMillion))
	rates.Render()
}
