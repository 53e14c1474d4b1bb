package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/adisurya/face-attendance/internal/config"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect and manage the attendance log",
}

var logsViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print attendance events, newest first",
	RunE:  runLogsView,
}

var logsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all attendance events and restart numbering",
	RunE:  runLogsReset,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsViewCmd)
	logsCmd.AddCommand(logsResetCmd)

	logsResetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func openLedger() (*database.Store, *database.AttendanceRepository, error) {
	cfg := config.Load()

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	return store, database.NewAttendanceRepository(store), nil
}

func runLogsView(cmd *cobra.Command, args []string) error {
	store, ledger, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := ledger.ListAll(context.Background())
	if err != nil {
		return fmt.Errorf("listing attendance events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No attendance events recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tIDENTITY\tNAME\tTIMESTAMP\tEVENT")
	fmt.Fprintln(w, "--\t--------\t----\t---------\t-----")

	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.LogID, e.IdentityID, e.Name, e.Timestamp, e.EventType)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d events\n", len(events))
	return nil
}

func runLogsReset(cmd *cobra.Command, args []string) error {
	if !mustGetBool(cmd, "yes") && !confirm("Delete ALL attendance events?") {
		fmt.Println("Aborted")
		return nil
	}

	store, ledger, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := ledger.ResetAll(context.Background()); err != nil {
		return fmt.Errorf("resetting attendance log: %w", err)
	}

	fmt.Println("Attendance log cleared")
	return nil
}

// confirm asks the user a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
