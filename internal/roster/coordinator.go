package roster

import (
	"context"

	"go.uber.org/zap"

	"shiftroster/internal/capacity"
	"shiftroster/internal/models"
)

// Coordinator orchestrates manual edits: it validates locally, calls the
// backend, replaces the cached snapshot from the authoritative response,
// and records the confirmed edit for undo. Local checks are advisory; the
// backend's verdict always wins.
type Coordinator struct {
	boundary   Boundary
	store      *ScheduleStore
	log        *ChangeLog
	residents  *ResidentDirectory
	holidays   *HolidayCache
	capacity   *capacity.Engine
	logger     *zap.Logger
	defaultMax int

	config models.HospitalConfig
}

func NewCoordinator(boundary Boundary, store *ScheduleStore, log *ChangeLog, residents *ResidentDirectory, holidays *HolidayCache, eng *capacity.Engine, defaultMax int, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		boundary:   boundary,
		store:      store,
		log:        log,
		residents:  residents,
		holidays:   holidays,
		capacity:   eng,
		logger:     logger,
		defaultMax: defaultMax,
	}
}

// Config returns the hospital slot configuration, fetched once from the
// backend. The core only reads it.
func (c *Coordinator) Config(ctx context.Context) (models.HospitalConfig, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := c.boundary.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// limitFor resolves the per-resident assignment cap: explicit override,
// else the solver's per_res_required, else the configured default.
func (c *Coordinator) limitFor(sched *models.Schedule, resident string, override int) int {
	if override > 0 {
		return override
	}
	if v, ok := sched.PerResRequired[resident]; ok && v > 0 {
		return v
	}
	return c.defaultMax
}

// Assign places the resident into (date, hospital). The cap precondition
// is checked locally first: re-assigning within the same date does not
// count twice, since the backend moves rather than duplicates.
func (c *Coordinator) Assign(ctx context.Context, month, date, resident, hospital string, maxAssignments int) (*models.Schedule, error) {
	sched, err := c.store.Get(ctx, month)
	if err != nil {
		return nil, err
	}

	limit := c.limitFor(sched, resident, maxAssignments)
	currentTotal := sched.PerResCounts[resident]
	onThisDate := 0
	if len(sched.HospitalsFor(date, resident)) > 0 {
		onThisDate = 1
	}
	if currentTotal-onThisDate+1 > limit {
		return nil, &CapExceededError{Resident: resident, Limit: limit}
	}

	req := models.AssignRequest{Month: month, Date: date, Resident: resident, Hospital: hospital}
	if maxAssignments > 0 {
		req.MaxAssignments = &maxAssignments
	}

	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Assign(ctx, req)
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	c.log.Push(models.Change{
		Op:       models.ChangeAssign,
		Month:    month,
		Date:     date,
		Resident: resident,
		Hospital: hospital,
	})
	c.logger.Info("assigned",
		zap.String("month", month),
		zap.String("date", date),
		zap.String("resident", resident),
		zap.String("hospital", hospital))
	return updated, nil
}

// Unassign removes the resident from every hospital slot on date. When
// the resident holds nothing that date it is a no-op success: the cached
// schedule is returned unchanged and no request is issued.
func (c *Coordinator) Unassign(ctx context.Context, month, date, resident string) (*models.Schedule, error) {
	sched, err := c.store.Get(ctx, month)
	if err != nil {
		return nil, err
	}

	// Captured before the call: the undo entry must know every hospital
	// the resident held.
	hospitals := sched.HospitalsFor(date, resident)
	if len(hospitals) == 0 {
		return sched, nil
	}

	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Unassign(ctx, models.UnassignRequest{Month: month, Date: date, Resident: resident})
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	c.log.Push(models.Change{
		Op:        models.ChangeUnassign,
		Month:     month,
		Date:      date,
		Resident:  resident,
		Hospitals: hospitals,
	})
	c.logger.Info("unassigned",
		zap.String("month", month),
		zap.String("date", date),
		zap.String("resident", resident),
		zap.Strings("hospitals", hospitals))
	return updated, nil
}

// Move relocates the resident from one slot to another. Rejected locally,
// without a network call, when the destination date is excluded for the
// resident, the move is a no-op, or the destination slot is full and not
// already held by the resident.
func (c *Coordinator) Move(ctx context.Context, month, resident, fromDate, fromHospital, toDate, toHospital string, maxAssignments int) (*models.Schedule, error) {
	if fromDate == toDate && fromHospital == toHospital {
		return nil, ErrNoopMove
	}

	res, err := c.residents.Resident(ctx, month, resident)
	if err != nil {
		return nil, err
	}
	if res.HasNG(toDate) {
		return nil, &NGDateError{Resident: resident, Date: toDate}
	}

	sched, err := c.store.Get(ctx, month)
	if err != nil {
		return nil, err
	}
	cfg, err := c.Config(ctx)
	if err != nil {
		return nil, err
	}
	holiday, err := c.holidays.IsHoliday(ctx, toDate)
	if err != nil {
		return nil, err
	}
	if c.capacity.Remaining(sched, cfg, toHospital, toDate, holiday) <= 0 &&
		!sched.Occupies(toDate, toHospital, resident) {
		return nil, &SlotFullError{Hospital: toHospital, Date: toDate}
	}

	req := models.MoveRequest{
		Month:        month,
		Resident:     resident,
		FromDate:     fromDate,
		FromHospital: fromHospital,
		ToDate:       toDate,
		ToHospital:   toHospital,
	}
	if maxAssignments > 0 {
		req.MaxAssignments = &maxAssignments
	}

	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Move(ctx, req)
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	c.log.Push(models.Change{
		Op:           models.ChangeMove,
		Month:        month,
		Resident:     resident,
		FromDate:     fromDate,
		FromHospital: fromHospital,
		ToDate:       toDate,
		ToHospital:   toHospital,
	})
	c.logger.Info("moved",
		zap.String("month", month),
		zap.String("resident", resident),
		zap.String("from", fromDate+"/"+fromHospital),
		zap.String("to", toDate+"/"+toHospital))
	return updated, nil
}

// Undo reverses the most recent confirmed edit. The popped entry is
// consumed even when the replay fails, so a failed undo cannot itself be
// undone. Replaying a multi-hospital unassign stops at the first failure;
// earlier re-assigns stand.
func (c *Coordinator) Undo(ctx context.Context) (*models.Schedule, error) {
	change, err := c.log.Pop()
	if err != nil {
		return nil, err
	}

	switch change.Op {
	case models.ChangeAssign:
		return c.applyUnassign(ctx, change.Month, change.Date, change.Resident)
	case models.ChangeUnassign:
		var sched *models.Schedule
		for _, h := range change.Hospitals {
			sched, err = c.applyAssign(ctx, change.Month, change.Date, change.Resident, h)
			if err != nil {
				c.logger.Error("undo replay aborted",
					zap.String("resident", change.Resident),
					zap.String("hospital", h),
					zap.Error(err))
				return nil, err
			}
		}
		return sched, nil
	case models.ChangeMove:
		return c.applyMove(ctx, change.Month, change.Resident,
			change.ToDate, change.ToHospital, change.FromDate, change.FromHospital)
	default:
		return nil, &RejectedError{Op: "undo", Message: "unknown change op " + string(change.Op)}
	}
}

// apply* issue backend mutations without local preconditions and without
// pushing to the log; they exist for undo replay.

func (c *Coordinator) applyAssign(ctx context.Context, month, date, resident, hospital string) (*models.Schedule, error) {
	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Assign(ctx, models.AssignRequest{Month: month, Date: date, Resident: resident, Hospital: hospital})
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	return updated, nil
}

func (c *Coordinator) applyUnassign(ctx context.Context, month, date, resident string) (*models.Schedule, error) {
	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Unassign(ctx, models.UnassignRequest{Month: month, Date: date, Resident: resident})
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	return updated, nil
}

func (c *Coordinator) applyMove(ctx context.Context, month, resident, fromDate, fromHospital, toDate, toHospital string) (*models.Schedule, error) {
	seq := c.store.NextSeq(month)
	updated, err := c.boundary.Move(ctx, models.MoveRequest{
		Month:        month,
		Resident:     resident,
		FromDate:     fromDate,
		FromHospital: fromHospital,
		ToDate:       toDate,
		ToHospital:   toHospital,
	})
	if err != nil {
		return nil, err
	}
	c.store.Replace(month, updated, seq)
	return updated, nil
}
