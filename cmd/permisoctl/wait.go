package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the database to be ready",
	Long: `Wait for the database to be ready by polling the connection.

This command will repeatedly ping the database until it responds
successfully or the maximum number of retries is reached.

Example:
  permisoctl wait
  permisoctl wait --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForDatabase(retries); err != nil {
			fmt.Fprintf(os.Stderr, "Database did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForDatabase(retries int) error {
	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	fmt.Println("Waiting for the database to be ready...")

	for i := 0; i < retries; i++ {
		if err := database.Ping(); err == nil {
			fmt.Println()
			fmt.Println("Database is ready!")
			return nil
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("database is not ready after %d seconds", retries)
}
