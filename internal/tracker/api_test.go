package tracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"btc-tracker-go/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStatusHandler(t *testing.T) {
	engine, _, _, _, _ := setupEngine(t)
	createSnapshot(t, engine, 59000, -1.2)
	createSnapshot(t, engine, 60000, 1.5)

	s := NewAPIServer(engine, 0, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.statusHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status struct {
		StartTime       string            `json:"start_time"`
		Uptime          string            `json:"uptime"`
		LastSnapshot    *models.Snapshot  `json:"last_snapshot"`
		RecentSnapshots []models.Snapshot `json:"recent_snapshots"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

	assert.NotEmpty(t, status.StartTime)
	assert.NotNil(t, status.LastSnapshot)
	assert.Equal(t, 60000.0, status.LastSnapshot.Price)
	assert.Len(t, status.RecentSnapshots, 2)
}

func TestStatusHandler_EmptyDatabase(t *testing.T) {
	engine, _, _, _, _ := setupEngine(t)

	s := NewAPIServer(engine, 0, zap.NewNop())

	rec := httptest.NewRecorder()
	s.statusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.NotContains(t, status, "last_snapshot")
	assert.NotContains(t, status, "recent_snapshots")
}

func TestHealthHandler(t *testing.T) {
	engine, _, _, _, _ := setupEngine(t)

	s := NewAPIServer(engine, 0, zap.NewNop())

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
}
