package web

import (
	"github.com/adisurya/face-attendance/internal/web/handlers"
	"github.com/go-chi/chi/v5"
)

func (s *Server) setupRoutes() {
	attendanceHandler := handlers.NewAttendanceHandler(s.deps.Service, s.deps.Extractor, s.deps.Notifier)
	logsHandler := handlers.NewLogsHandler(s.deps.Ledger)
	rosterHandler := handlers.NewRosterHandler(s.deps.Roster)
	audioHandler := handlers.NewAudioHandler(s.deps.Notifier.AudioDir())

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/attendance", attendanceHandler.Record)
		r.Get("/attendance/logs", logsHandler.List)
		r.Delete("/attendance/logs", logsHandler.Reset)

		r.Get("/roster", rosterHandler.List)
		r.Delete("/roster", rosterHandler.Clear)
	})

	// Synthesized speech artifacts referenced by attendance responses.
	s.router.Get("/audio/{filename}", audioHandler.Get)
}
