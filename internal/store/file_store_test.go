package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftroster/internal/models"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(dir, filepath.Join(dir, "config.json"), zap.NewNop()), dir
}

func TestConfig_MissingFileIsEmpty(t *testing.T) {
	st, _ := newTestStore(t)

	cfg, err := st.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestConfig_SaveKeepsBackup(t *testing.T) {
	st, dir := newTestStore(t)

	first := models.HospitalConfig{"大学病院": {"0": 2}}
	require.NoError(t, st.SaveConfig(first))
	second := models.HospitalConfig{"大学病院": {"0": 3, "2026-03-20": 6}}
	require.NoError(t, st.SaveConfig(second))

	got, err := st.Config()
	require.NoError(t, err)
	assert.Equal(t, second, got)

	raw, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"0": 2`)
}

func TestSolver_RoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Solver("2026-03")
	assert.ErrorIs(t, err, ErrNotFound)

	sched := &models.Schedule{
		Month:     "2026-03",
		Hospitals: []string{"大学病院"},
		Assignments: map[string]map[string][]string{
			"2026-03-02": {"大学病院": {"Sato"}},
		},
	}
	sched.Recount()
	require.NoError(t, st.SaveSolver("2026-03", sched))

	got, err := st.Solver("2026-03")
	require.NoError(t, err)
	assert.Equal(t, sched.Assignments, got.Assignments)
	assert.Equal(t, 1, got.TotalAssigned)
}

func TestSolver_FillsMissingMonth(t *testing.T) {
	st, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-03-solver.json"), []byte(`{"assignments":{}}`), 0o644))

	got, err := st.Solver("2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", got.Month)
}

func TestShift_MissingFileIsEmptySheet(t *testing.T) {
	st, _ := newTestStore(t)

	assert.False(t, st.HasShift("2026-03"))
	shift, err := st.Shift("2026-03")
	require.NoError(t, err)
	assert.Empty(t, shift.Residents)
}

func TestShift_RoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	shift := &models.ShiftFile{
		Residents: []*models.Resident{{Name: "Sato", NGDates: []string{"2026-03-03"}}},
		ManualAssignments: map[string]map[string][]string{
			"2026-03-04": {"大学病院": {"Sato"}},
		},
	}
	require.NoError(t, st.SaveShift("2026-03", shift))

	assert.True(t, st.HasShift("2026-03"))
	got, err := st.Shift("2026-03")
	require.NoError(t, err)
	assert.Equal(t, shift.Residents[0].NGDates, got.Residents[0].NGDates)
	assert.Equal(t, shift.ManualAssignments, got.ManualAssignments)
}
