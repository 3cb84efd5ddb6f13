// Package server implements the roster backend API: schedule and resident
// fetches, the manual-edit mutations, holiday lookups and the hospital
// slot configuration. Every successful mutation responds with the full
// recomputed snapshot for the month.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shiftroster/internal/holiday"
	"shiftroster/internal/middleware"
	"shiftroster/internal/models"
	"shiftroster/internal/store"
)

type Server struct {
	store      *store.FileStore
	holidays   *holiday.Table
	logger     *zap.Logger
	defaultMax int
}

func New(st *store.FileStore, holidays *holiday.Table, defaultMax int, logger *zap.Logger) *Server {
	return &Server{store: st, holidays: holidays, defaultMax: defaultMax, logger: logger}
}

// Handler builds the routed handler with logging and recovery wrapped
// around it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", s.requireMethod(http.MethodGet, s.handleSchedule))
	mux.HandleFunc("/api/residents", s.requireMethod(http.MethodGet, s.handleResidents))
	mux.HandleFunc("/api/is_holiday", s.requireMethod(http.MethodGet, s.handleIsHoliday))
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/manual_assign", s.requireMethod(http.MethodPost, s.handleManualAssign))
	mux.HandleFunc("/api/manual_unassign", s.requireMethod(http.MethodPost, s.handleManualUnassign))
	mux.HandleFunc("/api/manual_move", s.requireMethod(http.MethodPost, s.handleManualMove))
	return middleware.Recovery(s.logger, middleware.Logging(s.logger, mux))
}

func (s *Server) requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, models.APIError{Detail: detail})
}

// monthOrCurrent defaults a missing month parameter to the current month.
func monthOrCurrent(month string) string {
	if month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}
