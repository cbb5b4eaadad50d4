package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage permission records",
	Long:  `Manage individual permission records.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'record' requires a subcommand (delete, restore)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Soft-delete the record at a scope",
	Long: `Soft-delete the record at a scope.

The record stops participating in resolution but is kept and can be
restored.

Example:
  permisoctl record delete --tenant acme --resource doc-1 --user alice`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRecordDelete(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete record: %v\n", err)
			os.Exit(1)
		}
	},
}

var recordRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a soft-deleted record",
	Long: `Restore a soft-deleted record at a scope.

Example:
  permisoctl record restore --tenant acme --resource doc-1 --user alice`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRecordRestore(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore record: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	recordCmd.AddCommand(recordRestoreCmd)
	addScopeFlags(recordDeleteCmd)
	addScopeFlags(recordRestoreCmd)
}

func runRecordDelete(cmd *cobra.Command) error {
	key, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	deleted, err := rt.records.SoftDelete(cmd.Context(), key)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No live record at %s\n", key.Describe())
		return nil
	}

	fmt.Printf("Deleted record at %s\n", key.Describe())
	return nil
}

func runRecordRestore(cmd *cobra.Command) error {
	key, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	restored, err := rt.records.Restore(cmd.Context(), key)
	if err != nil {
		return err
	}
	if !restored {
		fmt.Printf("Record at %s is not deleted\n", key.Describe())
		return nil
	}

	fmt.Printf("Restored record at %s\n", key.Describe())
	return nil
}
