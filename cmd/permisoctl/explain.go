package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain <permission>",
	Short: "Show how a permission resolves across the hierarchy",
	Long: `Show how a permission resolves across the hierarchy.

Prints every applicable layer with its grants and denials, which layers
contributed to the decision, and the final verdict with its source.

Example:
  permisoctl explain --tenant acme --resource doc-1 --user alice edit`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExplain(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to explain: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
	addScopeFlags(explainCmd)
	_ = explainCmd.MarkFlagRequired("tenant")
	_ = explainCmd.MarkFlagRequired("user")
}

func runExplain(cmd *cobra.Command, kindArg string) error {
	kind, err := permission.KindString(kindArg)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	hierarchy, err := rt.resolver.Explain(cmd.Context(), requestFromFlags(cmd), kind)
	if err != nil {
		return err
	}

	fmt.Print(hierarchy.Describe())
	return nil
}
