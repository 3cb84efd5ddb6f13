package roster

import (
	"context"

	"go.uber.org/zap"

	"shiftroster/internal/models"
)

// ScheduleStore caches the authoritative per-month schedule snapshot.
// It is not safe for concurrent use: the edit core runs one gesture at a
// time on a single goroutine, and responses race only through the
// sequence guard in Replace.
type ScheduleStore struct {
	boundary Boundary
	logger   *zap.Logger
	entries  map[string]*monthEntry
}

type monthEntry struct {
	sched *models.Schedule
	// err is a cached fetch failure; it keeps repeated renders from
	// hammering an unreachable backend until Invalidate or a successful
	// mutation clears it.
	err         error
	lastApplied uint64
	nextSeq     uint64
}

func NewScheduleStore(boundary Boundary, logger *zap.Logger) *ScheduleStore {
	return &ScheduleStore{
		boundary: boundary,
		logger:   logger,
		entries:  make(map[string]*monthEntry),
	}
}

func (s *ScheduleStore) entry(month string) *monthEntry {
	e, ok := s.entries[month]
	if !ok {
		e = &monthEntry{}
		s.entries[month] = e
	}
	return e
}

// Get returns the cached snapshot for month, fetching it on a miss. A
// failed fetch is cached as a sentinel error until invalidated.
func (s *ScheduleStore) Get(ctx context.Context, month string) (*models.Schedule, error) {
	e := s.entry(month)
	if e.sched != nil {
		return e.sched, nil
	}
	if e.err != nil {
		return nil, e.err
	}
	sched, err := s.boundary.FetchSchedule(ctx, month)
	if err != nil {
		s.logger.Warn("schedule fetch failed", zap.String("month", month), zap.Error(err))
		e.err = err
		return nil, err
	}
	e.sched = sched
	return sched, nil
}

// Invalidate drops the cached snapshot (or cached failure) for month.
func (s *ScheduleStore) Invalidate(month string) {
	delete(s.entries, month)
}

// NextSeq issues the sequence number for an outgoing mutation request.
// Replace drops responses whose number is older than the last applied
// one, so late-arriving responses cannot clobber newer state.
func (s *ScheduleStore) NextSeq(month string) uint64 {
	e := s.entry(month)
	e.nextSeq++
	return e.nextSeq
}

// Replace overwrites the cached snapshot with an authoritative response.
// It reports whether the response was applied; stale responses are
// dropped.
func (s *ScheduleStore) Replace(month string, sched *models.Schedule, seq uint64) bool {
	e := s.entry(month)
	if seq < e.lastApplied {
		s.logger.Warn("dropping stale schedule response",
			zap.String("month", month),
			zap.Uint64("seq", seq),
			zap.Uint64("last_applied", e.lastApplied))
		return false
	}
	e.sched = sched
	e.err = nil
	e.lastApplied = seq
	return true
}
