package cmd

import (
	"context"
	"fmt"

	"github.com/adisurya/face-attendance/internal/config"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the attendance database",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database file and schema",
	Long: `Create the database file and schema.
Running init on an existing database is safe: tables are only created when
missing and no data is touched.`,
	RunE: runDBInit,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
}

func runDBInit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	fmt.Printf("Database ready at %s\n", cfg.Database.Path)
	return nil
}
