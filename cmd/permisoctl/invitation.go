package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// invitationCmd represents the invitation command
var invitationCmd = &cobra.Command{
	Use:   "invitation",
	Short: "Manage resource invitations",
	Long:  `Manage pending resource invitations.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'invitation' requires a subcommand (list, expire)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(invitationCmd)
}
