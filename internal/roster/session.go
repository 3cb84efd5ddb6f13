package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shiftroster/internal/capacity"
	"shiftroster/internal/models"
)

// ErrNoActiveDrag is returned for a drop without a preceding BeginDrag.
var ErrNoActiveDrag = errors.New("no active drag gesture")

// DragIntent is the ephemeral state of a drag gesture. It exists only
// between BeginDrag and the drop (or cancel) that ends it.
type DragIntent struct {
	Resident     string
	FromDate     string
	FromHospital string
}

// Outcome is the session's answer to a command.
type Outcome struct {
	// Schedule is the updated snapshot after a confirmed mutation.
	Schedule *models.Schedule
	// Candidates is set when a date-level drop matched more than one
	// eligible hospital and the UI must ask for an explicit choice.
	Candidates []capacity.Candidate
}

// Session is the single explicit application state for one edit session:
// the per-month caches, undo stack, active drag intent and highlighted
// resident. Component boundaries own disjoint sub-fields; there are no
// package globals.
type Session struct {
	Store       *ScheduleStore
	Log         *ChangeLog
	Residents   *ResidentDirectory
	Holidays    *HolidayCache
	Coordinator *Coordinator

	capacity *capacity.Engine
	logger   *zap.Logger

	drag        *DragIntent
	highlighted string
}

func NewSession(boundary Boundary, eng *capacity.Engine, defaultMax int, logger *zap.Logger) *Session {
	store := NewScheduleStore(boundary, logger)
	log := NewChangeLog()
	residents := NewResidentDirectory(boundary)
	holidays := NewHolidayCache(boundary)
	return &Session{
		Store:       store,
		Log:         log,
		Residents:   residents,
		Holidays:    holidays,
		Coordinator: NewCoordinator(boundary, store, log, residents, holidays, eng, defaultMax, logger),
		capacity:    eng,
		logger:      logger,
	}
}

// Drag returns the active drag intent, or nil.
func (s *Session) Drag() *DragIntent {
	return s.drag
}

// Highlighted returns the selected resident name, or "".
func (s *Session) Highlighted() string {
	return s.highlighted
}

// Dispatch consumes one UI command. Exactly one gesture is active at a
// time; selecting a resident or starting a drag replaces the previous
// state.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (*Outcome, error) {
	switch c := cmd.(type) {
	case RequestAssign:
		sched, err := s.Coordinator.Assign(ctx, c.Month, c.Date, c.Resident, c.Hospital, c.MaxAssignments)
		if err != nil {
			return nil, err
		}
		return &Outcome{Schedule: sched}, nil

	case RequestUnassign:
		sched, err := s.Coordinator.Unassign(ctx, c.Month, c.Date, c.Resident)
		if err != nil {
			return nil, err
		}
		return &Outcome{Schedule: sched}, nil

	case RequestMove:
		sched, err := s.Coordinator.Move(ctx, c.Month, c.Resident, c.FromDate, c.FromHospital, c.ToDate, c.ToHospital, c.MaxAssignments)
		if err != nil {
			return nil, err
		}
		return &Outcome{Schedule: sched}, nil

	case RequestUndo:
		sched, err := s.Coordinator.Undo(ctx)
		if err != nil {
			return nil, err
		}
		return &Outcome{Schedule: sched}, nil

	case SelectResident:
		s.highlighted = c.Resident
		return &Outcome{}, nil

	case ClearSelection:
		s.highlighted = ""
		return &Outcome{}, nil

	case BeginDrag:
		s.drag = &DragIntent{Resident: c.Resident, FromDate: c.FromDate, FromHospital: c.FromHospital}
		return &Outcome{}, nil

	case CancelDrag:
		s.drag = nil
		return &Outcome{}, nil

	case DropOnCell:
		return s.dropOnCell(ctx, c)

	case DropOnDate:
		return s.dropOnDate(ctx, c)

	default:
		return nil, fmt.Errorf("unhandled command %T", cmd)
	}
}

func (s *Session) dropOnCell(ctx context.Context, c DropOnCell) (*Outcome, error) {
	intent := s.drag
	if intent == nil {
		return nil, ErrNoActiveDrag
	}
	sched, err := s.Coordinator.Move(ctx, c.Month, intent.Resident,
		intent.FromDate, intent.FromHospital, c.Date, c.Hospital, c.MaxAssignments)
	if err != nil {
		// Local rejections keep the gesture alive so the user can retry
		// another cell; the caller decides when to cancel.
		return nil, err
	}
	s.drag = nil
	return &Outcome{Schedule: sched}, nil
}

func (s *Session) dropOnDate(ctx context.Context, c DropOnDate) (*Outcome, error) {
	intent := s.drag
	if intent == nil {
		return nil, ErrNoActiveDrag
	}

	res, err := s.Residents.Resident(ctx, c.Month, intent.Resident)
	if err != nil {
		return nil, err
	}
	if res.HasNG(c.Date) {
		return nil, &NGDateError{Resident: intent.Resident, Date: c.Date}
	}

	candidates, err := s.candidatesFor(ctx, c.Month, c.Date, intent.Resident)
	if err != nil {
		return nil, err
	}
	switch len(candidates) {
	case 0:
		return nil, &SlotFullError{Hospital: "any", Date: c.Date}
	case 1:
		return s.dropOnCell(ctx, DropOnCell{
			Month:          c.Month,
			Date:           c.Date,
			Hospital:       candidates[0].Hospital,
			MaxAssignments: c.MaxAssignments,
		})
	default:
		// Ambiguous target: hand the choice back, keep the gesture open.
		return &Outcome{Candidates: candidates}, nil
	}
}

func (s *Session) candidatesFor(ctx context.Context, month, date, resident string) ([]capacity.Candidate, error) {
	sched, err := s.Store.Get(ctx, month)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Coordinator.Config(ctx)
	if err != nil {
		return nil, err
	}
	holiday, err := s.Holidays.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.capacity.Candidates(sched, cfg, date, resident, holiday), nil
}

// Cell is one legal target for the highlighted resident.
type Cell struct {
	Date      string `json:"date"`
	Hospital  string `json:"hospital"`
	Remaining int    `json:"remaining"`
}

// Targets computes the legal drop/click cells for the highlighted
// resident over the month: every non-NG date paired with each hospital
// that has remaining capacity or that the resident already occupies.
func (s *Session) Targets(ctx context.Context, month string) ([]Cell, error) {
	if s.highlighted == "" {
		return nil, nil
	}
	sched, err := s.Store.Get(ctx, month)
	if err != nil {
		return nil, err
	}
	res, err := s.Residents.Resident(ctx, month, s.highlighted)
	if err != nil {
		return nil, err
	}

	var cells []Cell
	for _, date := range sched.Dates {
		if res.HasNG(date) {
			continue
		}
		candidates, err := s.candidatesFor(ctx, month, date, s.highlighted)
		if err != nil {
			return nil, err
		}
		for _, cand := range candidates {
			cells = append(cells, Cell{Date: date, Hospital: cand.Hospital, Remaining: cand.Remaining})
		}
	}
	return cells, nil
}
