package roster

import (
	"context"

	"shiftroster/internal/models"
)

// Boundary defines the backend endpoints the edit core depends on. Every
// successful mutation returns the full recomputed schedule for the month;
// the core replaces its cache with it wholesale.
type Boundary interface {
	FetchSchedule(ctx context.Context, month string) (*models.Schedule, error)
	FetchResidents(ctx context.Context, month string) ([]*models.Resident, error)
	IsHoliday(ctx context.Context, date string) (bool, error)
	GetConfig(ctx context.Context) (models.HospitalConfig, error)
	PutConfig(ctx context.Context, cfg models.HospitalConfig) error
	Assign(ctx context.Context, req models.AssignRequest) (*models.Schedule, error)
	Unassign(ctx context.Context, req models.UnassignRequest) (*models.Schedule, error)
	Move(ctx context.Context, req models.MoveRequest) (*models.Schedule, error)
}
