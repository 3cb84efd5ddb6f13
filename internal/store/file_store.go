// Package store persists the hospital configuration and per-month roster
// snapshots as JSON documents. Every write replaces a whole file; the
// snapshot-replacement contract of the API maps directly onto rewriting
// the month's document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"shiftroster/internal/models"
)

// ErrNotFound is returned when a requested document does not exist yet.
var ErrNotFound = errors.New("not found")

// FileStore keeps config.json (plus a .bak of the previous version),
// {month}-solver.json and {month}-shift.json under a data directory.
type FileStore struct {
	dir        string
	configPath string
	logger     *zap.Logger
	mu         sync.Mutex
}

func NewFileStore(dir, configPath string, logger *zap.Logger) *FileStore {
	return &FileStore{dir: dir, configPath: configPath, logger: logger}
}

// Config loads the hospital slot configuration. A missing file is an
// empty config, matching the backend it replaces.
func (s *FileStore) Config() (models.HospitalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.HospitalConfig{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg models.HospitalConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration, keeping the previous file as .bak.
func (s *FileStore) SaveConfig(cfg models.HospitalConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if _, err := os.Stat(s.configPath); err == nil {
		// Best effort; losing the backup must not block the save.
		if err := os.Rename(s.configPath, s.configPath+".bak"); err != nil {
			s.logger.Warn("config backup failed", zap.Error(err))
		}
	}
	return s.writeJSON(s.configPath, cfg)
}

// Solver loads the month's solver snapshot.
func (s *FileStore) Solver(month string) (*models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.solverPath(month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read solver snapshot: %w", err)
	}
	var sched models.Schedule
	if err := json.Unmarshal(raw, &sched); err != nil {
		return nil, fmt.Errorf("parse solver snapshot: %w", err)
	}
	if sched.Month == "" {
		sched.Month = month
	}
	return &sched, nil
}

// SaveSolver replaces the month's solver snapshot.
func (s *FileStore) SaveSolver(month string, sched *models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return s.writeJSON(s.solverPath(month), sched)
}

// Shift loads the month's resident sheet. A missing file yields an empty
// sheet so manual-edit mirroring stays best effort.
func (s *FileStore) Shift(month string) (*models.ShiftFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.shiftPath(month))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.ShiftFile{}, nil
		}
		return nil, fmt.Errorf("read shift file: %w", err)
	}
	var shift models.ShiftFile
	if err := json.Unmarshal(raw, &shift); err != nil {
		return nil, fmt.Errorf("parse shift file: %w", err)
	}
	return &shift, nil
}

// HasShift reports whether the month's resident sheet exists.
func (s *FileStore) HasShift(month string) bool {
	_, err := os.Stat(s.shiftPath(month))
	return err == nil
}

// SaveShift replaces the month's resident sheet.
func (s *FileStore) SaveShift(month string, shift *models.ShiftFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return s.writeJSON(s.shiftPath(month), shift)
}

func (s *FileStore) solverPath(month string) string {
	return filepath.Join(s.dir, month+"-solver.json")
}

func (s *FileStore) shiftPath(month string) string {
	return filepath.Join(s.dir, month+"-shift.json")
}

func (s *FileStore) writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
