package roster

import (
	"context"

	"shiftroster/internal/models"
)

// ResidentDirectory lazily fetches and caches the per-month resident list
// (names, rotation types, NG dates).
type ResidentDirectory struct {
	boundary Boundary
	byMonth  map[string]map[string]*models.Resident
}

func NewResidentDirectory(boundary Boundary) *ResidentDirectory {
	return &ResidentDirectory{
		boundary: boundary,
		byMonth:  make(map[string]map[string]*models.Resident),
	}
}

func (d *ResidentDirectory) load(ctx context.Context, month string) (map[string]*models.Resident, error) {
	if m, ok := d.byMonth[month]; ok {
		return m, nil
	}
	residents, err := d.boundary.FetchResidents(ctx, month)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*models.Resident, len(residents))
	for _, r := range residents {
		m[r.Name] = r
	}
	d.byMonth[month] = m
	return m, nil
}

// Resident returns the named resident for month, or nil when unknown.
func (d *ResidentDirectory) Resident(ctx context.Context, month, name string) (*models.Resident, error) {
	m, err := d.load(ctx, month)
	if err != nil {
		return nil, err
	}
	return m[name], nil
}

// Invalidate drops the cached list for month.
func (d *ResidentDirectory) Invalidate(month string) {
	delete(d.byMonth, month)
}

// HolidayCache memoizes per-date holiday lookups against the backend.
type HolidayCache struct {
	boundary Boundary
	known    map[string]bool
}

func NewHolidayCache(boundary Boundary) *HolidayCache {
	return &HolidayCache{boundary: boundary, known: make(map[string]bool)}
}

func (h *HolidayCache) IsHoliday(ctx context.Context, date string) (bool, error) {
	if v, ok := h.known[date]; ok {
		return v, nil
	}
	v, err := h.boundary.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	h.known[date] = v
	return v, nil
}
