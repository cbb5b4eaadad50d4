package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/policy"
)

// policyLoadCmd represents the policy load command
var policyLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a defaults policy file",
	Long: `Load a defaults policy file.

The document declares baseline grants and denials at the default scope
levels. Loading is additive and idempotent.

Example:
  permisoctl policy load defaults.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadPolicy(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load policy: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	policyCmd.AddCommand(policyLoadCmd)
}

func loadPolicy(cmd *cobra.Command, path string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	result, err := policy.NewLoader(rt.records).LoadFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	for _, scope := range result.Scopes {
		fmt.Printf("  applied %s\n", scope)
	}
	fmt.Printf("Policy loaded: %d scope(s) applied\n", result.Applied)
	return nil
}
