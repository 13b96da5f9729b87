package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsd/internal/status"
	"bsd/internal/testutil"
)

func TestHealthController_ReportsStatus(t *testing.T) {
	service := &testutil.MockStatsService{LiveCount: 3}
	ctrl := NewHealthController(service, status.NewProbe())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ctrl.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Status         string  `json:"status"`
		Uptime         string  `json:"uptime"`
		UptimeSeconds  float64 `json:"uptime_seconds"`
		LiveIdentities int     `json:"live_identities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.LiveIdentities)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
	assert.NotEmpty(t, resp.Uptime)
}

func TestHealthController_RejectsPost(t *testing.T) {
	ctrl := NewHealthController(&testutil.MockStatsService{}, status.NewProbe())

	rec := httptest.NewRecorder()
	ctrl.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m42s", formatDuration(42*time.Second))
	assert.Equal(t, "1h1m5s", formatDuration(time.Hour+time.Minute+5*time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
