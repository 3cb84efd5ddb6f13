package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftroster/internal/models"
	"shiftroster/internal/roster"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL}, zap.NewNop()), srv
}

func TestFetchSchedule(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schedule", r.URL.Path)
		assert.Equal(t, "2026-03", r.URL.Query().Get("month"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(models.Schedule{
			Month:     "2026-03",
			Hospitals: []string{"大学病院"},
			Assignments: map[string]map[string][]string{
				"2026-03-02": {"大学病院": {"Sato"}},
			},
		})
	}))

	sched, err := c.FetchSchedule(context.Background(), "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", sched.Month)
	assert.True(t, sched.Occupies("2026-03-02", "大学病院", "Sato"))
}

func TestFetchSchedule_BackendError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.APIError{Detail: "no solver output found for 2026-03; run solver first"})
	}))

	_, err := c.FetchSchedule(context.Background(), "2026-03")
	var fetchErr *roster.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "/api/schedule", fetchErr.Endpoint)
	assert.Contains(t, fetchErr.Error(), "no solver output found")
}

func TestFetchSchedule_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c := New(Options{BaseURL: srv.URL}, zap.NewNop())

	_, err := c.FetchSchedule(context.Background(), "2026-03")
	var fetchErr *roster.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetchResidents(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/residents", r.URL.Path)
		json.NewEncoder(w).Encode(models.ShiftFile{
			Residents: []*models.Resident{
				{Name: "Sato"},
				{Name: "Tanaka", NGDates: []string{"2026-03-03"}},
			},
		})
	}))

	residents, err := c.FetchResidents(context.Background(), "2026-03")
	require.NoError(t, err)
	require.Len(t, residents, 2)
	assert.True(t, residents[1].HasNG("2026-03-03"))
}

func TestIsHoliday(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-03-20", r.URL.Query().Get("date"))
		json.NewEncoder(w).Encode(map[string]any{"date": "2026-03-20", "is_holiday": true})
	}))

	holiday, err := c.IsHoliday(context.Background(), "2026-03-20")
	require.NoError(t, err)
	assert.True(t, holiday)
}

func TestConfigRoundTrip(t *testing.T) {
	var stored models.HospitalConfig
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		default:
			json.NewEncoder(w).Encode(stored)
		}
	}))
	ctx := context.Background()

	cfg := models.HospitalConfig{"大学病院": {"0": 2, "2026-03-20": 6}}
	require.NoError(t, c.PutConfig(ctx, cfg))

	got, err := c.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestAssign_UnwrapsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/manual_assign", r.URL.Path)
		var req models.AssignRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Sato", req.Resident)
		require.NotNil(t, req.MaxAssignments)
		assert.Equal(t, 3, *req.MaxAssignments)

		json.NewEncoder(w).Encode(models.MutationResult{
			Status: "ok",
			Result: &models.Schedule{
				Month: req.Month,
				Assignments: map[string]map[string][]string{
					req.Date: {req.Hospital: {req.Resident}},
				},
			},
		})
	}))

	limit := 3
	sched, err := c.Assign(context.Background(), models.AssignRequest{
		Month:          "2026-03",
		Date:           "2026-03-02",
		Resident:       "Sato",
		Hospital:       "大学病院",
		MaxAssignments: &limit,
	})
	require.NoError(t, err)
	assert.True(t, sched.Occupies("2026-03-02", "大学病院", "Sato"))
}

func TestAssign_RejectionCarriesDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.APIError{Detail: "Sato: 上限回数（2回）に達しています"})
	}))

	_, err := c.Assign(context.Background(), models.AssignRequest{
		Month: "2026-03", Date: "2026-03-02", Resident: "Sato", Hospital: "大学病院",
	})
	var rej *roster.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "assign", rej.Op)
	assert.Contains(t, rej.Message, "上限回数")
}

func TestMove_MissingSnapshotIsFetchError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.MutationResult{Status: "ok"})
	}))

	_, err := c.Move(context.Background(), models.MoveRequest{
		Month: "2026-03", Resident: "Sato", FromDate: "2026-03-02", ToDate: "2026-03-03", ToHospital: "大学病院",
	})
	var fetchErr *roster.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "missing schedule snapshot")
}

func TestUnassign_PostsToUnassignPath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/manual_unassign", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(models.MutationResult{
			Status: "ok",
			Result: &models.Schedule{Month: "2026-03"},
		})
	}))

	sched, err := c.Unassign(context.Background(), models.UnassignRequest{
		Month: "2026-03", Date: "2026-03-02", Resident: "Sato",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03", sched.Month)
}
