package adapthttp

import (
	"net/http"

	"bptracker/internal/domain"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.readings.Stats(r.Context(), s.ownerID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to calculate statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	window := intQuery(r, "window", 30)
	items, err := s.readings.Distribution(r.Context(), s.ownerID, window)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to calculate distribution")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"window": window, "items": items})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	trend, err := s.readings.VisualTrend(r.Context(), s.ownerID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to calculate trend")
		return
	}

	// No signal marshals as null, matching the stats snapshot shape.
	var out *domain.Trend
	if trend != "" {
		out = &trend
	}
	writeJSON(w, http.StatusOK, map[string]any{"trend": out})
}
