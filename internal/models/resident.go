package models

// Resident is a trainee eligible for roster slots. NGDates are dates the
// resident must never be assigned; NGReasons carries the parsed source of
// each exclusion (offsite training day, personal request, ...).
type Resident struct {
	Name         string              `json:"name"`
	RotationType string              `json:"rotation_type"`
	NGDates      []string            `json:"ng_dates"`
	NGReasons    map[string][]string `json:"ng_reasons,omitempty"`
}

// HasNG reports whether date is excluded for the resident.
func (r *Resident) HasNG(date string) bool {
	if r == nil {
		return false
	}
	for _, d := range r.NGDates {
		if d == date {
			return true
		}
	}
	return false
}

// ShiftFile is the per-month resident sheet persisted alongside the solver
// snapshot: parsed residents, raw offsite entries, and a mirror of manual
// edits kept for traceability.
type ShiftFile struct {
	Residents         []*Resident                    `json:"residents"`
	OffsiteEntries    map[string][]string            `json:"offsite_entries,omitempty"`
	ManualAssignments map[string]map[string][]string `json:"manual_assignments,omitempty"`
}
