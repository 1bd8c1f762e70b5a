package cmd

import (
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage resource-owner accounts",
	Long:  `Utilities for provisioning and inspecting the local user database`,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
