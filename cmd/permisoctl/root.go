package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "permisoctl",
	Short: "Hierarchical permission management",
	Long: `permisoctl manages hierarchical permission records, resolves effective
permissions, and runs resource sharing workflows.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
