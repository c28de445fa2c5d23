package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aura/internal/cli"
	"github.com/aretw0/aura/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes login, balance, transfer and logout as MCP tools over stdio,
so AI agents can use the bank through the same screens as the terminal client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		env.Logger.Info("Starting Aura MCP Server (Stdio)...")

		srv := mcp.NewServer(env.App, mcp.WithLogger(env.Logger))
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
