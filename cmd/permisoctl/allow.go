package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// allowCmd represents the allow command
var allowCmd = &cobra.Command{
	Use:   "allow <permissions>",
	Short: "Lift explicit denials at a scope",
	Long: `Lift explicit denials at a scope.

Clears the given permissions from the scope's denial set. This does not
grant anything; it only stops the scope from overriding other layers.

Example:
  permisoctl allow --tenant acme export`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAllow(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to allow: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(allowCmd)
	addScopeFlags(allowCmd)
}

func runAllow(cmd *cobra.Command, permsArg string) error {
	perms, err := parsePermissions(permsArg)
	if err != nil {
		return err
	}
	key, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	if err := rt.records.AllowAgain(cmd.Context(), key, perms); err != nil {
		return err
	}

	fmt.Printf("Lifted denial of [%s] at %s\n", perms, key.Describe())
	return nil
}
