// Package cmd - serve command
package cmd

import (
	"github.com/spf13/cobra"

	"webtoq-cost/api"
	"webtoq-cost/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve estimates over HTTP.

Endpoints:
  POST /estimate            estimate a workload
  GET  /scenarios           list presets
  POST /scenarios/{name}    run a preset
  GET  /pricing             active rate card
  GET  /tiers               tier profiles
  GET  /health, /version    service info
  GET  /metrics             Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder, err := newBuilder()
		if err != nil {
			return err
		}
		scenarios, err := loadScenarios()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = config.Get().Server.Addr
		}
		return api.NewServer(Version, builder, scenarios).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&scenariosFile, "scenarios", "", "HCL file with extra scenarios")
}
