package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/aura/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive banking screens",
	Long:  `Starts the login, home and transfer screens in the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		env, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		return env.RunInteractive(headless)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts or styling)")

	rootCmd.RunE = runCmd.RunE
}
