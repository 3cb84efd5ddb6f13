package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Schedule {
	s := &Schedule{
		Month:     "2026-03",
		Hospitals: []string{"大学病院", "永井病院"},
		Assignments: map[string]map[string][]string{
			"2026-03-02": {"大学病院": {"Tanaka"}, "永井病院": {"Ito", "Sato"}},
			"2026-03-03": {"大学病院": {}, "永井病院": {"Sato"}},
		},
	}
	s.Recount()
	return s
}

func TestHospitalsFor_KeepsScheduleOrder(t *testing.T) {
	s := sample()
	s.Assignments["2026-03-02"]["大学病院"] = append(s.Assignments["2026-03-02"]["大学病院"], "Sato")

	assert.Equal(t, []string{"大学病院", "永井病院"}, s.HospitalsFor("2026-03-02", "Sato"))
	assert.Nil(t, s.HospitalsFor("2026-03-09", "Sato"))
}

func TestRemoveFromDate(t *testing.T) {
	s := sample()

	assert.True(t, s.RemoveFromDate("2026-03-02", "Sato"))
	assert.False(t, s.Occupies("2026-03-02", "永井病院", "Sato"))
	assert.Equal(t, []string{"Ito"}, s.Assignments["2026-03-02"]["永井病院"])

	assert.False(t, s.RemoveFromDate("2026-03-02", "Sato"))
}

func TestAddTo_DeduplicatesAndCreatesDate(t *testing.T) {
	s := sample()

	s.AddTo("2026-03-03", "永井病院", "Sato")
	assert.Equal(t, []string{"Sato"}, s.Assignments["2026-03-03"]["永井病院"])

	s.AddTo("2026-03-09", "大学病院", "Tanaka")
	entry := s.Assignments["2026-03-09"]
	require.NotNil(t, entry)
	assert.Equal(t, []string{"Tanaka"}, entry["大学病院"])
	// New dates get an entry for every known hospital.
	assert.Contains(t, entry, "永井病院")
}

func TestRecount(t *testing.T) {
	s := sample()

	assert.Equal(t, 4, s.TotalAssigned)
	assert.Equal(t, map[string]int{"Tanaka": 1, "Ito": 1, "Sato": 2}, s.PerResCounts)

	s.RemoveFromDate("2026-03-03", "Sato")
	s.Recount()
	assert.Equal(t, 3, s.TotalAssigned)
	assert.Equal(t, 1, s.PerResCounts["Sato"])
}

func TestClone_IsIndependent(t *testing.T) {
	s := sample()
	c := s.Clone()

	c.AddTo("2026-03-02", "大学病院", "Sato")
	c.Recount()

	assert.False(t, s.Occupies("2026-03-02", "大学病院", "Sato"))
	assert.Equal(t, 4, s.TotalAssigned)
	assert.Equal(t, 5, c.TotalAssigned)
}

func TestHospitalConfigValidate(t *testing.T) {
	valid := HospitalConfig{"大学病院": {"0": 2, "6": 1, "2026-03-20": 6}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, HospitalConfig{"大学病院": {"7": 1}}.Validate())
	assert.Error(t, HospitalConfig{"大学病院": {"someday": 1}}.Validate())
	assert.Error(t, HospitalConfig{"大学病院": {"0": -1}}.Validate())
}
