package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/repository/fixtures"
	"github.com/crimemap/backend/internal/service"
)

type frameEnvelope struct {
	Success bool          `json:"success"`
	Data    service.Frame `json:"data"`
}

type errorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func newTestApp(t *testing.T) (*fiber.App, *service.SessionManager) {
	t.Helper()
	records := service.NewRecordService(fixtures.NewSource())
	_, err := records.Load(context.Background())
	require.NoError(t, err)

	sessions := service.NewSessionManager(records, service.SessionOptions{Home: domain.NewYorkCenter})
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, NewHandler(records, sessions, service.NewAnalyticsService(records)))
	return app, sessions
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func mountSession(t *testing.T, app *fiber.App) service.Frame {
	t.Helper()
	code, raw := do(t, app, "POST", "/api/v1/sessions", "")
	require.Equal(t, fiber.StatusCreated, code)
	var env frameEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotEmpty(t, env.Data.SessionID)
	return env.Data
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := do(t, app, "GET", "/health", "")
	require.Equal(t, fiber.StatusOK, code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetHotspots(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := do(t, app, "GET", "/api/v1/hotspots", "")
	require.Equal(t, fiber.StatusOK, code)

	var body struct {
		Data  []HotspotView `json:"data"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, 3, body.Count)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.Equal(t, domain.TierHigh, body.Data[0].Tier)
	assert.Equal(t, domain.TierMedium, body.Data[1].Tier)
	assert.Equal(t, 90, body.Data[2].RiskPercent)
}

func TestClassify(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := do(t, app, "GET", "/api/v1/classify?intensity=0.4", "")
	require.Equal(t, fiber.StatusOK, code)
	var body struct {
		Data domain.Classification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, domain.TierMedium, body.Data.Tier)

	code, _ = do(t, app, "GET", "/api/v1/classify", "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, raw = do(t, app, "GET", "/api/v1/classify?intensity=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	var e errorEnvelope
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, "intensity must be a number", e.Message)

	code, _ = do(t, app, "GET", "/api/v1/classify?intensity=NaN", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestSessionLifecycle(t *testing.T) {
	app, sessions := newTestApp(t)
	frame := mountSession(t, app)
	assert.Len(t, frame.Overlays, 3)
	assert.Nil(t, frame.Panel)
	assert.Equal(t, 1, sessions.Count())

	path := "/api/v1/sessions/" + frame.SessionID

	code, raw := do(t, app, "POST", path+"/events", `{"type":"click","id":"3"}`)
	require.Equal(t, fiber.StatusOK, code)
	var env frameEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotNil(t, env.Data.Panel)
	assert.Equal(t, "Burglary Hotspot", env.Data.Panel.Title)
	assert.Equal(t, 90, env.Data.Panel.RiskPercent)

	code, raw = do(t, app, "POST", path+"/events", `{"type":"dismiss"}`)
	require.Equal(t, fiber.StatusOK, code)
	env = frameEnvelope{}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Nil(t, env.Data.Panel)

	code, _ = do(t, app, "DELETE", path, "")
	assert.Equal(t, fiber.StatusNoContent, code)
	assert.Equal(t, 0, sessions.Count())

	code, raw = do(t, app, "GET", path, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	var e errorEnvelope
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.True(t, e.Error)
}

func TestPostEventRejectsMalformed(t *testing.T) {
	app, _ := newTestApp(t)
	frame := mountSession(t, app)
	path := "/api/v1/sessions/" + frame.SessionID + "/events"

	code, _ := do(t, app, "POST", path, `{"type":"click"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = do(t, app, "POST", path, `{"type":"wiggle","id":"1"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = do(t, app, "POST", path, `not json`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestControls(t *testing.T) {
	app, _ := newTestApp(t)
	frame := mountSession(t, app)
	require.True(t, frame.Viewport.OverlaysVisible)
	path := "/api/v1/sessions/" + frame.SessionID + "/controls/"

	code, raw := do(t, app, "POST", path+"toggle-overlays", "")
	require.Equal(t, fiber.StatusOK, code)
	var env frameEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.False(t, env.Data.Viewport.OverlaysVisible)

	code, raw = do(t, app, "POST", path+"recenter", "")
	require.Equal(t, fiber.StatusOK, code)
	env = frameEnvelope{}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, 1, env.Data.Viewport.Recenters)

	code, _ = do(t, app, "POST", path+"zoom-to-mars", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestRefreshRecordsPublishesToSessions(t *testing.T) {
	app, _ := newTestApp(t)
	frame := mountSession(t, app)

	code, raw := do(t, app, "POST", "/api/v1/records/refresh", "")
	require.Equal(t, fiber.StatusOK, code)
	var body struct {
		Version         uint64 `json:"version"`
		SessionsUpdated int    `json:"sessions_updated"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Greater(t, body.Version, frame.SnapshotVersion)
	assert.Equal(t, 1, body.SessionsUpdated)
}

func TestGetAnalytics(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := do(t, app, "GET", "/api/v1/analytics", "")
	require.Equal(t, fiber.StatusOK, code)
	var body struct {
		Data domain.AnalyticsSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 3, body.Data.HotspotCount)
	assert.Equal(t, 713, body.Data.TotalIncidents)
}
