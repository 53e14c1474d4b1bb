package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/adisurya/face-attendance/internal/config"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/spf13/cobra"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect and manage enrolled identities",
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print enrolled identities",
	RunE:  runRosterList,
}

var rosterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all enrolled identities",
	RunE:  runRosterClear,
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterClearCmd)

	rosterClearCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func openRoster() (*database.Store, *database.IdentityRepository, error) {
	cfg := config.Load()

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	return store, database.NewIdentityRepository(store), nil
}

func runRosterList(cmd *cobra.Command, args []string) error {
	store, roster, err := openRoster()
	if err != nil {
		return err
	}
	defer store.Close()

	identities, err := roster.LoadAll(context.Background())
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	if len(identities) == 0 {
		fmt.Println("No identities enrolled, run 'face-attendance train' first")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDIM\tUPDATED")
	fmt.Fprintln(w, "--\t----\t---\t-------")

	for _, id := range identities {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id.ID, id.Name, len(id.Embedding), id.LastUpdated)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d identities\n", len(identities))
	return nil
}

func runRosterClear(cmd *cobra.Command, args []string) error {
	if !mustGetBool(cmd, "yes") && !confirm("Remove ALL enrolled identities?") {
		fmt.Println("Aborted")
		return nil
	}

	store, roster, err := openRoster()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := roster.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("clearing roster: %w", err)
	}

	fmt.Println("Roster cleared")
	return nil
}
