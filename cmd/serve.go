package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adisurya/face-attendance/internal/attendance"
	"github.com/adisurya/face-attendance/internal/config"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/adisurya/face-attendance/internal/extractor"
	"github.com/adisurya/face-attendance/internal/notify"
	"github.com/adisurya/face-attendance/internal/recognition"
	"github.com/adisurya/face-attendance/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the attendance web server",
	Long: `Start the attendance web server.
The server accepts camera frames on the attendance endpoint, matches them
against the enrolled roster and records entry events. Run the train command
first to enroll identities from a dataset of reference photos.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	roster := database.NewIdentityRepository(store)
	ledger := database.NewAttendanceRepository(store)

	// A missing or empty roster is not fatal; every attempt simply comes
	// back unrecognized until someone runs the train command.
	identities, err := roster.LoadAll(ctx)
	if err != nil {
		fmt.Printf("Warning: failed to load roster: %v\n", err)
		identities = nil
	}
	if len(identities) == 0 {
		fmt.Println("Warning: roster is empty, run 'face-attendance train' to enroll identities")
	} else {
		fmt.Printf("Loaded %d enrolled identities\n", len(identities))
	}

	engine := recognition.NewEngine(identities, cfg.Recognition.Threshold)
	service := attendance.NewService(engine, ledger, cfg.Attendance.Dedup)
	notifier := notify.NewNotifier(cfg.Notify.TTSURL, cfg.Notify.AudioDir, cfg.Notify.Lang)
	if notifier.Enabled() {
		fmt.Printf("Voice feedback enabled via %s\n", cfg.Notify.TTSURL)
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(port, host, web.Dependencies{
		Service:   service,
		Extractor: extractor.NewClient(cfg.Extractor.URL, cfg.Extractor.Dim),
		Roster:    roster,
		Ledger:    ledger,
		Notifier:  notifier,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
		if err := notifier.Cleanup(); err != nil {
			fmt.Printf("Error removing audio artifacts: %v\n", err)
		}
	}()

	fmt.Printf("Starting attendance server on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
