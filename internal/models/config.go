package models

import (
	"fmt"
	"strconv"
	"time"
)

// HospitalConfig maps hospital name to slot capacities. Keys are either a
// weekday index "0".."6" (Monday=0) or an ISO date "YYYY-MM-DD"; a date key
// overrides the weekday default for that day.
type HospitalConfig map[string]map[string]int

// Hospitals returns the configured hospital names.
func (c HospitalConfig) Hospitals() []string {
	out := make([]string, 0, len(c))
	for h := range c {
		out = append(out, h)
	}
	return out
}

// Validate checks every key and value. Weekday keys must be 0..6, date
// keys must parse as ISO dates, and slot values must be non-negative.
func (c HospitalConfig) Validate() error {
	for h, mapping := range c {
		for k, v := range mapping {
			if wd, err := strconv.Atoi(k); err == nil {
				if wd < 0 || wd > 6 {
					return fmt.Errorf("config for %s: weekday keys must be between 0 and 6, got %q", h, k)
				}
			} else if _, err := time.Parse("2006-01-02", k); err != nil {
				return fmt.Errorf("config for %s: keys must be weekday integer 0..6 or date string YYYY-MM-DD, got %q", h, k)
			}
			if v < 0 {
				return fmt.Errorf("config for %s: slot values must be non-negative, got %d for %q", h, v, k)
			}
		}
	}
	return nil
}
