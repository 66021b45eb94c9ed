// Package cmd provides the CLI commands for webtoq-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webtoq-cost/core/advisor"
	"webtoq-cost/core/cost"
	"webtoq-cost/core/output"
	"webtoq-cost/core/pricing"
	"webtoq-cost/internal/config"
	"webtoq-cost/internal/errors"
	"webtoq-cost/internal/logging"
)

// Version is set at build time with -ldflags "-X webtoq-cost/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile     string
	pricingFile string
	verbose     bool
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "webtoq-cost",
	Short: "Estimate monthly AWS costs for the WebToQ platform",
	Long: `webtoq-cost estimates the monthly AWS bill of a WebToQ deployment.

It derives request and session volumes from a handful of workload numbers,
picks an infrastructure tier, prices every service against a versioned
rate card and reports unit economics and optimization advice.

Examples:
  webtoq-cost estimate --agents 1000
  webtoq-cost estimate --agents 1000 --cache-mode provisioned --format csv
  webtoq-cost scenario run webtoq --project 2
  webtoq-cost serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or YAML (default is $HOME/.webtoq-cost/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pricingFile, "pricing", "", "HCL rate card (default is the embedded card)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(pricingCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadTable resolves the rate card: --pricing, then the config file, then the embedded card
func loadTable() (*pricing.Table, error) {
	cfg := config.Get()
	path := pricingFile
	if path == "" {
		path = cfg.Pricing.File
	}

	table, err := pricing.Load(path)
	if err != nil {
		return nil, err
	}
	if table.Currency() != cfg.Pricing.Currency {
		return nil, errors.Newf(errors.TypeConfig, "rate card currency %s does not match configured %s", table.Currency(), cfg.Pricing.Currency)
	}
	return table, nil
}

// newBuilder wires the estimator and advisor from the active configuration
func newBuilder() (*output.Builder, error) {
	cfg := config.Get()

	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	assumptions, err := cfg.Estimator.ToAssumptions()
	if err != nil {
		return nil, err
	}

	e := cost.NewEstimator(table, assumptions, cfg.Business.RevenuePerAgentDecimal())
	return output.NewBuilder(e, advisor.New(e, advisor.DefaultThresholds())), nil
}

// render writes a report in the requested format, falling back to the configured default
func render(cmd *cobra.Command, report *output.Report, format string) error {
	cfg := config.Get()
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	registry := output.DefaultRegistry(output.CLIOptions{
		NoColor: noColor || cfg.Output.NoColor,
		Verbose: verbose || cfg.Output.ShowDetails,
	})
	return registry.Render(cmd.OutOrStdout(), f, report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "webtoq-cost version %s\n", Version)
		table, err := loadTable()
		if err != nil {
			return err
		}
		snap := table.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "rate card %s %s (%s), sha256 %s\n", snap.Provider, snap.Region, snap.Effective, table.ContentHash())
		return nil
	},
}
