package models

// Schedule is the authoritative per-month roster snapshot. The backend
// returns it whole on every fetch and every successful mutation; clients
// replace their cached copy instead of merging.
type Schedule struct {
	Month          string                         `json:"month"`
	Dates          []string                       `json:"dates"`
	Hospitals      []string                       `json:"hospitals"`
	Assignments    map[string]map[string][]string `json:"assignments"`
	PerResCounts   map[string]int                 `json:"per_res_counts,omitempty"`
	PerResRequired map[string]int                 `json:"per_res_required,omitempty"`
	TotalAssigned  int                            `json:"total_assigned"`
	TotalRequired  int                            `json:"total_required,omitempty"`
}

// AssignedCount returns how many residents occupy the (date, hospital) slot.
func (s *Schedule) AssignedCount(date, hospital string) int {
	if s == nil || s.Assignments == nil {
		return 0
	}
	return len(s.Assignments[date][hospital])
}

// HospitalsFor returns the hospitals the resident occupies on date, in the
// schedule's hospital order when known.
func (s *Schedule) HospitalsFor(date, resident string) []string {
	if s == nil || s.Assignments == nil {
		return nil
	}
	entry := s.Assignments[date]
	if entry == nil {
		return nil
	}
	ordered := s.Hospitals
	if len(ordered) == 0 {
		ordered = make([]string, 0, len(entry))
		for h := range entry {
			ordered = append(ordered, h)
		}
	}
	var out []string
	for _, h := range ordered {
		for _, name := range entry[h] {
			if name == resident {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// Occupies reports whether the resident holds the (date, hospital) slot.
func (s *Schedule) Occupies(date, hospital, resident string) bool {
	if s == nil || s.Assignments == nil {
		return false
	}
	for _, name := range s.Assignments[date][hospital] {
		if name == resident {
			return true
		}
	}
	return false
}

// EnsureDate creates an empty per-hospital entry for date if missing.
func (s *Schedule) EnsureDate(date string) {
	if s.Assignments == nil {
		s.Assignments = make(map[string]map[string][]string)
	}
	if _, ok := s.Assignments[date]; !ok {
		entry := make(map[string][]string, len(s.Hospitals))
		for _, h := range s.Hospitals {
			entry[h] = []string{}
		}
		s.Assignments[date] = entry
	}
}

// RemoveFrom removes the resident from one hospital on date. It reports
// whether anything was removed.
func (s *Schedule) RemoveFrom(date, hospital, resident string) bool {
	entry := s.Assignments[date]
	if entry == nil {
		return false
	}
	arr := entry[hospital]
	kept := arr[:0]
	removed := false
	for _, name := range arr {
		if name == resident {
			removed = true
			continue
		}
		kept = append(kept, name)
	}
	if removed {
		entry[hospital] = kept
	}
	return removed
}

// RemoveFromDate removes the resident from every hospital on date. It
// reports whether anything was removed.
func (s *Schedule) RemoveFromDate(date, resident string) bool {
	entry := s.Assignments[date]
	removed := false
	for h := range entry {
		if s.RemoveFrom(date, h, resident) {
			removed = true
		}
	}
	return removed
}

// AddTo appends the resident to the (date, hospital) slot unless already
// present.
func (s *Schedule) AddTo(date, hospital, resident string) {
	s.EnsureDate(date)
	if s.Occupies(date, hospital, resident) {
		return
	}
	s.Assignments[date][hospital] = append(s.Assignments[date][hospital], resident)
}

// Recount rebuilds PerResCounts and TotalAssigned from the assignments map.
// Mutations call it before persisting so derived fields never drift.
func (s *Schedule) Recount() {
	counts := make(map[string]int)
	total := 0
	for _, entry := range s.Assignments {
		for _, arr := range entry {
			for _, name := range arr {
				counts[name]++
				total++
			}
		}
	}
	s.PerResCounts = counts
	s.TotalAssigned = total
}

// Clone returns a deep copy of the snapshot.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := &Schedule{
		Month:         s.Month,
		Dates:         append([]string(nil), s.Dates...),
		Hospitals:     append([]string(nil), s.Hospitals...),
		TotalAssigned: s.TotalAssigned,
		TotalRequired: s.TotalRequired,
	}
	if s.Assignments != nil {
		out.Assignments = make(map[string]map[string][]string, len(s.Assignments))
		for d, entry := range s.Assignments {
			ce := make(map[string][]string, len(entry))
			for h, arr := range entry {
				ce[h] = append([]string(nil), arr...)
			}
			out.Assignments[d] = ce
		}
	}
	if s.PerResCounts != nil {
		out.PerResCounts = make(map[string]int, len(s.PerResCounts))
		for k, v := range s.PerResCounts {
			out.PerResCounts[k] = v
		}
	}
	if s.PerResRequired != nil {
		out.PerResRequired = make(map[string]int, len(s.PerResRequired))
		for k, v := range s.PerResRequired {
			out.PerResRequired[k] = v
		}
	}
	return out
}
