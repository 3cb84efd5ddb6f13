// Package holiday answers national-holiday lookups from a preloaded date
// table. Computing the calendar itself is someone else's job; the table
// is a JSON array of ISO dates.
package holiday

import (
	"encoding/json"
	"fmt"
	"os"
)

type Table struct {
	dates map[string]bool
}

// Load reads the table from path. An empty path yields an empty table
// (every lookup false).
func Load(path string) (*Table, error) {
	t := &Table{dates: make(map[string]bool)}
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday table: %w", err)
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, fmt.Errorf("parse holiday table: %w", err)
	}
	for _, d := range dates {
		t.dates[d] = true
	}
	return t, nil
}

// FromDates builds a table from an in-memory date list.
func FromDates(dates []string) *Table {
	t := &Table{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		t.dates[d] = true
	}
	return t
}

// Contains reports whether the ISO date is a holiday.
func (t *Table) Contains(date string) bool {
	return t.dates[date]
}
