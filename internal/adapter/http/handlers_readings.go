package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bptracker/internal/app"
	"bptracker/internal/domain"

	"go.uber.org/zap"
)

func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReadings(w, r)
	case http.MethodPost:
		s.createReading(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listReadings(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", app.DefaultListLimit)
	readings, err := s.readings.List(r.Context(), s.ownerID, limit)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to fetch blood pressure readings")
		return
	}
	if readings == nil {
		readings = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) createReading(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Systolic   int        `json:"systolic"`
		Diastolic  int        `json:"diastolic"`
		Pulse      *int       `json:"pulse"`
		Notes      string     `json:"notes"`
		Tags       []string   `json:"tags"`
		RecordedAt *time.Time `json:"recordedAt"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	in := app.CreateReadingInput{
		Systolic:  body.Systolic,
		Diastolic: body.Diastolic,
		Pulse:     body.Pulse,
		Notes:     body.Notes,
		Tags:      body.Tags,
	}
	if body.RecordedAt != nil {
		in.RecordedAt = *body.RecordedAt
	}

	reading, warnings, err := s.readings.Create(r.Context(), s.ownerID, in)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": verr.Fields,
			})
			return
		}
		if errors.Is(err, domain.ErrSystolicNotAboveDiastolic) {
			writeErrorMsg(w, http.StatusBadRequest, "Systolic must be higher than diastolic")
			return
		}
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to create blood pressure reading")
		return
	}

	for _, warning := range warnings {
		s.logger.Info("implausible reading accepted",
			zap.Int64("reading_id", reading.ID),
			zap.String("warning", warning),
		)
	}
	writeJSON(w, http.StatusCreated, reading)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	reading, err := s.readings.Latest(r.Context(), s.ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "No readings found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to fetch latest reading")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		writeErrorMsg(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := parseDate(startStr)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "Invalid date format")
		return
	}
	end, err := parseDate(endStr)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	readings, err := s.readings.Range(r.Context(), s.ownerID, start, end)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to fetch readings")
		return
	}
	if readings == nil {
		readings = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) handleReadingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "Invalid reading ID")
		return
	}

	err = s.readings.Delete(r.Context(), id, s.ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "Reading not found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "Failed to delete reading")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
