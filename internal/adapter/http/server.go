// Package adapthttp is the driving HTTP adapter that routes requests to
// application services.
package adapthttp

import (
	"net/http"

	"bptracker/internal/app"

	"go.uber.org/zap"
)

// Server routes API requests to the reading service. Every handler passes the
// provisioned owner ID explicitly into the service layer.
type Server struct {
	readings *app.ReadingService
	ownerID  int64
	logger   *zap.Logger
	webDir   string
}

// New creates a Server wired to the given application service.
func New(readings *app.ReadingService, ownerID int64, logger *zap.Logger, webDir string) *Server {
	return &Server{readings: readings, ownerID: ownerID, logger: logger, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/blood-pressure", s.handleReadings)
	api.HandleFunc("/blood-pressure/latest", s.handleLatest)
	api.HandleFunc("/blood-pressure/range", s.handleRange)
	api.HandleFunc("/blood-pressure/stats", s.handleStats)
	api.HandleFunc("/blood-pressure/categories", s.handleCategories)
	api.HandleFunc("/blood-pressure/trend", s.handleTrend)
	api.HandleFunc("/blood-pressure/{id}", s.handleReadingByID)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.withRequestLogging(withNoCache(root))
}
