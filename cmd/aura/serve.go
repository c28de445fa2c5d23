package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/aura/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo bank HTTP server",
	Long: `Starts the demo bank exposing POST /login, POST /transfer and GET /accounts/{id},
plus /health, /openapi.yaml and /metrics. Customers come from a YAML seed file and live
in memory, or in Redis when --redis is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		seed, _ := cmd.Flags().GetString("seed")
		redisURL, _ := cmd.Flags().GetString("redis")
		return cli.Serve(cli.ServeOptions{
			Options:  globalOptions(cmd),
			Addr:     addr,
			Seed:     seed,
			RedisURL: redisURL,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().String("seed", "", "YAML seed file with customers")
	serveCmd.Flags().String("redis", "", "Redis URL for a shared ledger (e.g. redis://localhost:6379/0)")
}
