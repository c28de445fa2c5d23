package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/aura"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aura",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aura version %s\n", strings.TrimSpace(aura.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
