package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"shiftroster/internal/models"
	"shiftroster/internal/store"
)

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	month := monthOrCurrent(r.URL.Query().Get("month"))
	sched, err := s.store.Solver(month)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("no solver output found for %s; run solver first", month))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleResidents(w http.ResponseWriter, r *http.Request) {
	month := monthOrCurrent(r.URL.Query().Get("month"))
	if !s.store.HasShift(month) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("no parsed resident data for %s; upload sheets first", month))
		return
	}
	shift, err := s.store.Shift(month)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, shift)
}

func (s *Server) handleIsHoliday(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		s.writeError(w, http.StatusBadRequest, "date required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"date":       date,
		"is_holiday": s.holidays.Contains(date),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.store.Config()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, cfg)
	case http.MethodPut, http.MethodPost:
		var cfg models.HospitalConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			s.writeError(w, http.StatusBadRequest, "payload must be a mapping of hospital to slot config")
			return
		}
		if err := cfg.Validate(); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.store.SaveConfig(cfg); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "config saved"})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// limitFor resolves the per-resident cap: request override, then the
// solver's per_res_required, then the configured default.
func (s *Server) limitFor(sched *models.Schedule, resident string, override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	if v, ok := sched.PerResRequired[resident]; ok && v > 0 {
		return v
	}
	return s.defaultMax
}

// loadSolver fetches the month snapshot and seeds the hospital list from
// the stored config when the snapshot carries none.
func (s *Server) loadSolver(w http.ResponseWriter, month string) (*models.Schedule, bool) {
	sched, err := s.store.Solver(month)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("no solver output found for %s; run solver first", month))
		return nil, false
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if len(sched.Hospitals) == 0 {
		if cfg, cfgErr := s.store.Config(); cfgErr == nil {
			hospitals := cfg.Hospitals()
			sort.Strings(hospitals)
			sched.Hospitals = hospitals
		}
	}
	return sched, true
}

func (s *Server) respondMutation(w http.ResponseWriter, month string, sched *models.Schedule) {
	sched.Recount()
	if err := s.store.SaveSolver(month, sched); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("cannot write solver file: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, models.MutationResult{Status: "ok", Result: sched})
}

func capMessage(limit int) string {
	return fmt.Sprintf("上限回数（%d回）に達しています", limit)
}

func (s *Server) handleManualAssign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Month == "" || req.Date == "" || req.Resident == "" || req.Hospital == "" {
		s.writeError(w, http.StatusBadRequest, "month,date,resident,hospital are required")
		return
	}

	sched, ok := s.loadSolver(w, req.Month)
	if !ok {
		return
	}
	sched.EnsureDate(req.Date)

	limit := s.limitFor(sched, req.Resident, req.MaxAssignments)
	current := 0
	for _, entry := range sched.Assignments {
		for _, arr := range entry {
			for _, name := range arr {
				if name == req.Resident {
					current++
				}
			}
		}
	}
	alreadyOnDate := len(sched.HospitalsFor(req.Date, req.Resident)) > 0
	discount := 0
	if alreadyOnDate {
		discount = 1
	}
	if current-discount+1 > limit {
		s.writeError(w, http.StatusBadRequest, capMessage(limit))
		return
	}

	// One slot per date: drop any existing assignment on the day before
	// adding the new one.
	sched.RemoveFromDate(req.Date, req.Resident)
	sched.AddTo(req.Date, req.Hospital, req.Resident)

	s.mirrorAssign(req.Month, req.Date, req.Hospital, req.Resident)
	s.respondMutation(w, req.Month, sched)
}

func (s *Server) handleManualUnassign(w http.ResponseWriter, r *http.Request) {
	var req models.UnassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Month == "" || req.Date == "" || req.Resident == "" {
		s.writeError(w, http.StatusBadRequest, "month,date,resident are required")
		return
	}

	sched, ok := s.loadSolver(w, req.Month)
	if !ok {
		return
	}
	if _, exists := sched.Assignments[req.Date]; !exists {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("no assignments for %s", req.Date))
		return
	}
	if !sched.RemoveFromDate(req.Date, req.Resident) {
		s.writeError(w, http.StatusBadRequest, "resident not assigned on that date")
		return
	}

	s.mirrorRemove(req.Month, req.Date, req.Resident)
	s.respondMutation(w, req.Month, sched)
}

func (s *Server) handleManualMove(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Month == "" || req.Resident == "" || req.FromDate == "" || req.ToDate == "" || req.ToHospital == "" {
		s.writeError(w, http.StatusBadRequest, "month,resident,from_date,to_date,to_hospital are required")
		return
	}

	sched, ok := s.loadSolver(w, req.Month)
	if !ok {
		return
	}

	// Removal first: a move of a resident who is not at the source is an
	// error, not an implicit assign.
	removed := false
	if req.FromHospital != "" {
		removed = sched.RemoveFrom(req.FromDate, req.FromHospital, req.Resident)
	} else {
		removed = sched.RemoveFromDate(req.FromDate, req.Resident)
	}
	if !removed {
		s.writeError(w, http.StatusBadRequest, "resident not assigned on from_date")
		return
	}

	limit := s.limitFor(sched, req.Resident, req.MaxAssignments)
	current := 0
	for _, entry := range sched.Assignments {
		for _, arr := range entry {
			for _, name := range arr {
				if name == req.Resident {
					current++
				}
			}
		}
	}
	if current+1 > limit {
		s.writeError(w, http.StatusBadRequest, capMessage(limit))
		return
	}

	sched.AddTo(req.ToDate, req.ToHospital, req.Resident)

	s.mirrorRemove(req.Month, req.FromDate, req.Resident)
	s.mirrorAssign(req.Month, req.ToDate, req.ToHospital, req.Resident)
	s.respondMutation(w, req.Month, sched)
}

// mirrorAssign records a manual edit in the month's shift file. The
// mirror exists for traceability only, so failures are logged and
// swallowed.
func (s *Server) mirrorAssign(month, date, hospital, resident string) {
	shift, err := s.store.Shift(month)
	if err != nil {
		s.logger.Warn("manual-edit mirror read failed", zap.String("month", month), zap.Error(err))
		return
	}
	if shift.ManualAssignments == nil {
		shift.ManualAssignments = make(map[string]map[string][]string)
	}
	if shift.ManualAssignments[date] == nil {
		shift.ManualAssignments[date] = make(map[string][]string)
	}
	for _, name := range shift.ManualAssignments[date][hospital] {
		if name == resident {
			return
		}
	}
	shift.ManualAssignments[date][hospital] = append(shift.ManualAssignments[date][hospital], resident)
	if err := s.store.SaveShift(month, shift); err != nil {
		s.logger.Warn("manual-edit mirror write failed", zap.String("month", month), zap.Error(err))
	}
}

func (s *Server) mirrorRemove(month, date, resident string) {
	shift, err := s.store.Shift(month)
	if err != nil {
		s.logger.Warn("manual-edit mirror read failed", zap.String("month", month), zap.Error(err))
		return
	}
	entry := shift.ManualAssignments[date]
	if entry == nil {
		return
	}
	for h, arr := range entry {
		kept := arr[:0]
		for _, name := range arr {
			if name != resident {
				kept = append(kept, name)
			}
		}
		if len(kept) == 0 {
			delete(entry, h)
		} else {
			entry[h] = kept
		}
	}
	if len(entry) == 0 {
		delete(shift.ManualAssignments, date)
	}
	if err := s.store.SaveShift(month, shift); err != nil {
		s.logger.Warn("manual-edit mirror write failed", zap.String("month", month), zap.Error(err))
	}
}
