package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/aura/internal/cli"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials against the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, password, err := credentials(cmd)
		if err != nil {
			return err
		}
		env, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		return env.RunLogin(cmd.Context(), user, password)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance of the primary account",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, password, err := credentials(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		env, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		return env.RunBalance(cmd.Context(), user, password, plain)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "Send money from the primary account to another user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, password, err := credentials(cmd)
		if err != nil {
			return err
		}
		env, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		return env.RunTransfer(cmd.Context(), user, password, args[0], args[1])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, balanceCmd, transferCmd} {
		addCredentialFlags(cmd)
		rootCmd.AddCommand(cmd)
	}
	balanceCmd.Flags().Bool("plain", false, "Print markdown without terminal styling")
}
