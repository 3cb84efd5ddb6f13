// Package capacity computes remaining slot counts for (hospital, date)
// pairs from the hospital configuration and the current schedule. It holds
// no mutable state.
package capacity

import (
	"sort"
	"strconv"
	"time"

	"shiftroster/internal/models"
)

// weekendHolidayBonus is the extra slot count the university hospital gets
// on weekends and national holidays.
const weekendHolidayBonus = 4

type Engine struct {
	universityHospital string
}

func NewEngine(universityHospital string) *Engine {
	return &Engine{universityHospital: universityHospital}
}

// Candidate is a hospital eligible to receive a resident on a given date.
type Candidate struct {
	Hospital  string `json:"hospital"`
	Remaining int    `json:"remaining"`
}

// WeekdayIndex converts Go's Sunday-first weekday to the backend's
// Monday-first index. The (wd+6) mod 7 mapping is a wire contract with the
// backend's own weekday keys and must not change.
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// CapacityOf resolves the configured capacity for (hospital, date): the
// date-specific entry when present, else the weekday default, else 0.
func (e *Engine) CapacityOf(cfg models.HospitalConfig, hospital, date string) int {
	mapping := cfg[hospital]
	if mapping == nil {
		return 0
	}
	if v, ok := mapping[date]; ok {
		return v
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	if v, ok := mapping[strconv.Itoa(WeekdayIndex(d))]; ok {
		return v
	}
	return 0
}

// Remaining returns the open slot count for (hospital, date) given the
// current schedule. The university hospital gains a fixed bonus on
// weekends and holidays.
func (e *Engine) Remaining(sched *models.Schedule, cfg models.HospitalConfig, hospital, date string, isHoliday bool) int {
	slots := e.CapacityOf(cfg, hospital, date)
	if hospital == e.universityHospital && (isWeekend(date) || isHoliday) {
		slots += weekendHolidayBonus
	}
	return slots - sched.AssignedCount(date, hospital)
}

// Candidates lists hospitals that can take the resident on date: any with
// remaining capacity, plus any the resident already occupies (re-choosing
// the current hospital must stay valid and not consume a slot).
func (e *Engine) Candidates(sched *models.Schedule, cfg models.HospitalConfig, date, resident string, isHoliday bool) []Candidate {
	hospitals := hospitalOrder(sched, cfg)
	var out []Candidate
	for _, h := range hospitals {
		rem := e.Remaining(sched, cfg, h, date, isHoliday)
		if rem > 0 || sched.Occupies(date, h, resident) {
			out = append(out, Candidate{Hospital: h, Remaining: rem})
		}
	}
	return out
}

func hospitalOrder(sched *models.Schedule, cfg models.HospitalConfig) []string {
	if sched != nil && len(sched.Hospitals) > 0 {
		return sched.Hospitals
	}
	hospitals := cfg.Hospitals()
	sort.Strings(hospitals)
	return hospitals
}

func isWeekend(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
