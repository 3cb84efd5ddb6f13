package roster

import (
	"context"

	"shiftroster/internal/models"
)

type MockBoundary struct {
	FetchScheduleFunc  func(ctx context.Context, month string) (*models.Schedule, error)
	FetchResidentsFunc func(ctx context.Context, month string) ([]*models.Resident, error)
	IsHolidayFunc      func(ctx context.Context, date string) (bool, error)
	GetConfigFunc      func(ctx context.Context) (models.HospitalConfig, error)
	PutConfigFunc      func(ctx context.Context, cfg models.HospitalConfig) error
	AssignFunc         func(ctx context.Context, req models.AssignRequest) (*models.Schedule, error)
	UnassignFunc       func(ctx context.Context, req models.UnassignRequest) (*models.Schedule, error)
	MoveFunc           func(ctx context.Context, req models.MoveRequest) (*models.Schedule, error)
}

func (m *MockBoundary) FetchSchedule(ctx context.Context, month string) (*models.Schedule, error) {
	return m.FetchScheduleFunc(ctx, month)
}

func (m *MockBoundary) FetchResidents(ctx context.Context, month string) ([]*models.Resident, error) {
	return m.FetchResidentsFunc(ctx, month)
}

func (m *MockBoundary) IsHoliday(ctx context.Context, date string) (bool, error) {
	if m.IsHolidayFunc != nil {
		return m.IsHolidayFunc(ctx, date)
	}
	return false, nil
}

func (m *MockBoundary) GetConfig(ctx context.Context) (models.HospitalConfig, error) {
	return m.GetConfigFunc(ctx)
}

func (m *MockBoundary) PutConfig(ctx context.Context, cfg models.HospitalConfig) error {
	if m.PutConfigFunc != nil {
		return m.PutConfigFunc(ctx, cfg)
	}
	return nil
}

func (m *MockBoundary) Assign(ctx context.Context, req models.AssignRequest) (*models.Schedule, error) {
	return m.AssignFunc(ctx, req)
}

func (m *MockBoundary) Unassign(ctx context.Context, req models.UnassignRequest) (*models.Schedule, error) {
	return m.UnassignFunc(ctx, req)
}

func (m *MockBoundary) Move(ctx context.Context, req models.MoveRequest) (*models.Schedule, error) {
	return m.MoveFunc(ctx, req)
}

// fakeBoundary applies mutations to an in-memory snapshot with the same
// semantics as the real backend, so round-trip tests exercise genuine
// state transitions instead of canned responses.
type fakeBoundary struct {
	sched     *models.Schedule
	residents []*models.Resident
	config    models.HospitalConfig
	holidays  map[string]bool
	calls     []string
}

func (f *fakeBoundary) FetchSchedule(ctx context.Context, month string) (*models.Schedule, error) {
	f.calls = append(f.calls, "fetch_schedule")
	return f.sched.Clone(), nil
}

func (f *fakeBoundary) FetchResidents(ctx context.Context, month string) ([]*models.Resident, error) {
	f.calls = append(f.calls, "fetch_residents")
	return f.residents, nil
}

func (f *fakeBoundary) IsHoliday(ctx context.Context, date string) (bool, error) {
	return f.holidays[date], nil
}

func (f *fakeBoundary) GetConfig(ctx context.Context) (models.HospitalConfig, error) {
	return f.config, nil
}

func (f *fakeBoundary) PutConfig(ctx context.Context, cfg models.HospitalConfig) error {
	f.config = cfg
	return nil
}

func (f *fakeBoundary) Assign(ctx context.Context, req models.AssignRequest) (*models.Schedule, error) {
	f.calls = append(f.calls, "assign")
	f.sched.RemoveFromDate(req.Date, req.Resident)
	f.sched.AddTo(req.Date, req.Hospital, req.Resident)
	f.sched.Recount()
	return f.sched.Clone(), nil
}

func (f *fakeBoundary) Unassign(ctx context.Context, req models.UnassignRequest) (*models.Schedule, error) {
	f.calls = append(f.calls, "unassign")
	f.sched.RemoveFromDate(req.Date, req.Resident)
	f.sched.Recount()
	return f.sched.Clone(), nil
}

func (f *fakeBoundary) Move(ctx context.Context, req models.MoveRequest) (*models.Schedule, error) {
	f.calls = append(f.calls, "move")
	if req.FromHospital != "" {
		f.sched.RemoveFrom(req.FromDate, req.FromHospital, req.Resident)
	} else {
		f.sched.RemoveFromDate(req.FromDate, req.Resident)
	}
	f.sched.AddTo(req.ToDate, req.ToHospital, req.Resident)
	f.sched.Recount()
	return f.sched.Clone(), nil
}
