package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAPI() *SchedulerAPI {
	return NewSchedulerAPI(DefaultServerConfig(), nil)
}

func postJSON(t *testing.T, api *SchedulerAPI, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.Router.ServeHTTP(rec, req)
	return rec
}

func sampleRequest() map[string]any {
	return map[string]any{
		"orders": []map[string]any{
			{"id": "OT1001", "due": 12, "cluster": 5, "format": "A", "qty": 800},
			{"id": "OT1002", "due": 18, "cluster": 4, "format": "B", "qty": 500},
		},
		"machines": map[string]any{
			"Linea_1": map[string]any{"capacity": 120, "available_at": 0},
			"Linea_2": map[string]any{"capacity": 90, "available_at": 0},
		},
		"setup_times": map[string]float64{
			"A-B": 1.5, "B-A": 1.5,
		},
	}
}

func TestCreateSchedule_Optimized(t *testing.T) {
	api := newTestAPI()
	rec := postJSON(t, api, "/api/schedule", sampleRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RunID    string `json:"run_id"`
		Mode     string `json:"mode"`
		Schedule []struct {
			Type     string `json:"type"`
			Quantity int64  `json:"quantity"`
		} `json:"schedule"`
		Summary struct {
			QtyClient int64 `json:"qty_total_cliente"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, ModeOptimized, resp.Mode)
	assert.NotEmpty(t, resp.Schedule)
	assert.Equal(t, int64(1300), resp.Summary.QtyClient)
}

func TestCreateSchedule_Legacy(t *testing.T) {
	api := newTestAPI()
	payload := sampleRequest()
	payload["mode"] = ModeLegacy

	rec := postJSON(t, api, "/api/schedule", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Mode    string `json:"mode"`
		Summary struct {
			TotalOTs int `json:"total_ots"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ModeLegacy, resp.Mode)
	assert.Equal(t, 2, resp.Summary.TotalOTs)
}

func TestCreateSchedule_CalendarAnnotations(t *testing.T) {
	api := newTestAPI()
	payload := sampleRequest()
	payload["start_datetime"] = "2024-01-25T08:00:00"
	payload["work_hours_per_day"] = 24.0

	rec := postJSON(t, api, "/api/schedule", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Schedule []struct {
			StartClock string `json:"start_datetime_str"`
			EndClock   string `json:"end_datetime_str"`
		} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Schedule)
	assert.Equal(t, "2024-01-25 08:00", resp.Schedule[0].StartClock)
	assert.NotEmpty(t, resp.Schedule[0].EndClock)
}

func TestCreateSchedule_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"unknown_mode", func(p map[string]any) { p["mode"] = "quantum" }},
		{"no_orders", func(p map[string]any) { p["orders"] = []map[string]any{} }},
		{"no_machines", func(p map[string]any) { p["machines"] = map[string]any{} }},
		{"zero_capacity", func(p map[string]any) {
			p["machines"] = map[string]any{"Linea_1": map[string]any{"capacity": 0}}
		}},
		{"order_without_demand", func(p map[string]any) {
			p["orders"] = []map[string]any{{"id": "OT1", "due": 12, "cluster": 5}}
		}},
		{"bad_setup_key", func(p map[string]any) {
			p["setup_times"] = map[string]float64{"AB": 1.5}
		}},
		{"bad_start_datetime", func(p map[string]any) {
			p["start_datetime"] = "yesterday"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI()
			payload := sampleRequest()
			tt.mutate(payload)
			rec := postJSON(t, api, "/api/schedule", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRunEndpoints(t *testing.T) {
	api := newTestAPI()

	rec := postJSON(t, api, "/api/schedule", sampleRequest())
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	listRec := httptest.NewRecorder()
	api.Router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, listRec.Code)
	var listed struct {
		Runs []struct {
			ID   string `json:"id"`
			Mode string `json:"mode"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Len(t, listed.Runs, 1)
	assert.Equal(t, created.RunID, listed.Runs[0].ID)

	getRec := httptest.NewRecorder()
	api.Router.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/runs/"+created.RunID, nil))
	assert.Equal(t, http.StatusOK, getRec.Code)

	missingRec := httptest.NewRecorder()
	api.Router.ServeHTTP(missingRec, httptest.NewRequest(http.MethodGet, "/api/runs/run-999999", nil))
	assert.Equal(t, http.StatusNotFound, missingRec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI()

	healthRec := httptest.NewRecorder()
	api.Router.ServeHTTP(healthRec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, healthRec.Code)

	// A run populates the counters before scraping.
	postJSON(t, api, "/api/schedule", sampleRequest())

	metricsRec := httptest.NewRecorder()
	api.Router.ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "schedule_runs_total")
}
