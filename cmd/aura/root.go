package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aura/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Aura is a small mobile-banking client",
	Long: `Aura logs in to a bank, shows the balance of your primary account and sends transfers.
It also ships the demo bank it talks to (aura serve).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("base-url", "", "Bank server address (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ConfigPath: configPath, BaseURL: baseURL, Debug: debug}
}

// credentials reads --user and --password, prompting for the password when omitted.
func credentials(cmd *cobra.Command) (string, string, error) {
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	if user == "" {
		return "", "", fmt.Errorf("--user is required")
	}
	password, err := cli.ResolvePassword(password)
	return user, password, err
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "User identifier")
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
}
