package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/alloy/config"
	"github.com/Ramsey-B/alloy/pkg/logging"
	"github.com/Ramsey-B/alloy/pkg/startup"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "alloy.db"))
	t.Setenv("STARTUP_MAX_ATTEMPTS", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	a := New(cfg, logging.Nop(), "test")
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(func() { _ = a.Stop(context.Background()) })
	return a
}

func TestPrepare(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	assert.Equal(t, startup.StartupStatusStarted, a.startup.Status("database"))

	e, err := a.Prepare(ctx)
	require.NoError(t, err)

	for path, want := range map[string]int{
		"/health/ready":          http.StatusOK,
		"/health/live":           http.StatusOK,
		"/health":                http.StatusOK,
		"/metrics":               http.StatusOK,
		"/api/materials/1":       http.StatusOK,
		"/api/materials/999":     http.StatusNotFound,
		"/api/curves/100/points": http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}

	t.Run("second seed is skipped", func(t *testing.T) {
		result, err := a.Seed(ctx)
		require.NoError(t, err)
		assert.True(t, result.Skipped)
	})
}

func TestPrepareFailsOnMissingDataset(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "dir")
	t.Setenv("DATASET_DIR", t.TempDir())
	a := newTestApp(t)

	_, err := a.Prepare(context.Background())
	require.Error(t, err)

	rec := httptest.NewRecorder()
	// readiness never flips when seeding fails
	require.NoError(t, a.health.Ready(echoContext(rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStartFailsWithoutDatabase(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")
	t.Setenv("STARTUP_MAX_ATTEMPTS", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	a := New(cfg, logging.Nop(), "test")
	err = a.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, startup.StartupStatusFailed, a.startup.Status("database"))
}

func echoContext(rec *httptest.ResponseRecorder) echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
}
