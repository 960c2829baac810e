package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/alloy/internal/testutil"
	"github.com/Ramsey-B/alloy/pkg/cache"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/middleware"
	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/repositories"
	"github.com/Ramsey-B/alloy/pkg/seeder"
)

// recordingMaterials records which listing was chosen and with what limit.
type recordingMaterials struct {
	repositories.MaterialRepo
	call  string
	arg   string
	limit int
}

func (r *recordingMaterials) List(_ context.Context, limit int) ([]models.Material, error) {
	r.call, r.limit = "list", limit
	return []models.Material{}, nil
}

func (r *recordingMaterials) SearchByName(_ context.Context, query string, limit int) ([]models.Material, error) {
	r.call, r.arg, r.limit = "name", query, limit
	return []models.Material{}, nil
}

func (r *recordingMaterials) ListByCategory(_ context.Context, category string, limit int) ([]models.Material, error) {
	r.call, r.arg, r.limit = "category", category, limit
	return []models.Material{}, nil
}

type recordingProperties struct {
	call  string
	key   string
	limit int
}

func (r *recordingProperties) ListByConditionID(_ context.Context, _ int64, limit int) ([]models.ConditionProperty, error) {
	r.call, r.limit = "all", limit
	return []models.ConditionProperty{}, nil
}

func (r *recordingProperties) ListByConditionIDAndKey(_ context.Context, _ int64, key string, limit int) ([]models.ConditionProperty, error) {
	r.call, r.key, r.limit = "key", key, limit
	return []models.ConditionProperty{}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(testutil.Logger())
	return e
}

func get(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(0, 500))
	assert.Equal(t, 1, ClampLimit(-1, 500))
	assert.Equal(t, 37, ClampLimit(37, 500))
	assert.Equal(t, 500, ClampLimit(10000, 500))
	assert.Equal(t, 2000, ClampLimit(10000, 2000))
}

func TestMaterialListSelection(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantCall  string
		wantArg   string
		wantLimit int
	}{
		{"defaults", "/api/materials", "list", "", 50},
		{"zero limit clamps to one", "/api/materials?limit=0", "list", "", 1},
		{"negative limit clamps to one", "/api/materials?limit=-1", "list", "", 1},
		{"large limit clamps to max", "/api/materials?limit=10000", "list", "", 500},
		{"name wins over category", "/api/materials?name=Alu&category=metal", "name", "Alu", 50},
		{"category", "/api/materials?category=metal&limit=5", "category", "metal", 5},
		{"blank name counts as absent", "/api/materials?name=%20%20&category=metal", "category", "metal", 50},
		{"blank filters fall back to listing", "/api/materials?name=&category=", "list", "", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingMaterials{}
			e := newTestEcho()
			NewMaterialHandler(repo, nil, nil).RegisterRoutes(e.Group("/api"))

			rec := get(t, e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCall, repo.call)
			assert.Equal(t, tt.wantArg, repo.arg)
			assert.Equal(t, tt.wantLimit, repo.limit)
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestPropertyListSelection(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantCall  string
		wantKey   string
		wantLimit int
	}{
		{"defaults", "/api/conditions/10/properties", "all", "", 200},
		{"zero limit clamps to one", "/api/conditions/10/properties?limit=0", "all", "", 1},
		{"large limit clamps to max", "/api/conditions/10/properties?limit=10000", "all", "", 2000},
		{"key narrows", "/api/conditions/10/properties?key=yield_strength&limit=3", "key", "yield_strength", 3},
		{"blank key counts as absent", "/api/conditions/10/properties?key=%20", "all", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := &recordingProperties{}
			e := newTestEcho()
			NewConditionHandler(nil, props, nil, nil).RegisterRoutes(e.Group("/api"))

			rec := get(t, e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCall, props.call)
			assert.Equal(t, tt.wantKey, props.key)
			assert.Equal(t, tt.wantLimit, props.limit)
		})
	}
}

func TestBadInput(t *testing.T) {
	e := newTestEcho()
	api := e.Group("/api")
	NewMaterialHandler(&recordingMaterials{}, nil, nil).RegisterRoutes(api)
	NewConditionHandler(nil, &recordingProperties{}, nil, nil).RegisterRoutes(api)
	NewCurveHandler(nil, nil, nil).RegisterRoutes(api)

	for _, target := range []string{
		"/api/materials/abc",
		"/api/materials/abc/conditions",
		"/api/materials?limit=ten",
		"/api/conditions/1.5",
		"/api/conditions/10/properties?limit=x",
		"/api/curves/abc/points",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, e, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[middleware.ErrorResponse](t, rec)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func seededAPI(t *testing.T, rc *ResponseCache) *echo.Echo {
	t.Helper()
	store := testutil.NewSQLiteDB(t)
	logger := testutil.Logger()

	materials := repositories.NewMaterialRepository(store, logger)
	_, err := seeder.NewSeeder(store, materials, dataset.Embedded(), logger).Seed(context.Background())
	require.NoError(t, err)

	return newAPI(store, rc)
}

func newAPI(store database.DB, rc *ResponseCache) *echo.Echo {
	logger := testutil.Logger()
	conditions := repositories.NewConditionRepository(store, logger)
	curves := repositories.NewCurveRepository(store, logger)

	e := newTestEcho()
	api := e.Group("/api")
	NewMaterialHandler(repositories.NewMaterialRepository(store, logger), conditions, rc).RegisterRoutes(api)
	NewConditionHandler(conditions, repositories.NewConditionPropertyRepository(store, logger), curves, rc).RegisterRoutes(api)
	NewCurveHandler(curves, repositories.NewCurvePointRepository(store, logger), rc).RegisterRoutes(api)
	return e
}

func TestSeededAPI(t *testing.T) {
	e := seededAPI(t, nil)

	t.Run("list materials by name", func(t *testing.T) {
		rec := get(t, e, "/api/materials")
		require.Equal(t, http.StatusOK, rec.Code)

		materials := decode[[]models.Material](t, rec)
		require.Len(t, materials, 5)
		assert.Equal(t, "Alumina 99.5%", *materials[0].Name)
		assert.Equal(t, "Titanium Ti-6Al-4V", *materials[4].Name)
	})

	t.Run("limit is applied", func(t *testing.T) {
		rec := get(t, e, "/api/materials?limit=0")
		assert.Len(t, decode[[]models.Material](t, rec), 1)
	})

	t.Run("search by name", func(t *testing.T) {
		materials := decode[[]models.Material](t, get(t, e, "/api/materials?name=Alum"))
		require.Len(t, materials, 2)
		assert.Equal(t, int64(5), materials[0].ID)
		assert.Equal(t, int64(1), materials[1].ID)
	})

	t.Run("category", func(t *testing.T) {
		materials := decode[[]models.Material](t, get(t, e, "/api/materials?category=metal"))
		assert.Len(t, materials, 3)
	})

	t.Run("material by id", func(t *testing.T) {
		material := decode[models.Material](t, get(t, e, "/api/materials/1"))
		assert.Equal(t, "Aluminum 6061", *material.Name)
		require.NotNil(t, material.DefaultConditionID)
		assert.Equal(t, int64(10), *material.DefaultConditionID)
	})

	t.Run("missing material names the id", func(t *testing.T) {
		rec := get(t, e, "/api/materials/999")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode[middleware.ErrorResponse](t, rec).Message, "999")
	})

	t.Run("conditions default first", func(t *testing.T) {
		conditions := decode[[]models.Condition](t, get(t, e, "/api/materials/2/conditions"))
		require.Len(t, conditions, 2)
		assert.Equal(t, int64(21), conditions[0].ID)
		assert.True(t, conditions[0].IsDefault)
	})

	t.Run("material without conditions", func(t *testing.T) {
		rec := get(t, e, "/api/materials/5/conditions")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("default condition", func(t *testing.T) {
		condition := decode[models.Condition](t, get(t, e, "/api/materials/3/default-condition"))
		assert.Equal(t, int64(30), condition.ID)
	})

	t.Run("no default condition", func(t *testing.T) {
		rec := get(t, e, "/api/materials/4/default-condition")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode[middleware.ErrorResponse](t, rec).Message, "4")
	})

	t.Run("condition by id", func(t *testing.T) {
		condition := decode[models.Condition](t, get(t, e, "/api/conditions/11"))
		assert.Equal(t, int64(1), condition.MaterialID)
		assert.False(t, condition.IsDefault)

		assert.Equal(t, http.StatusNotFound, get(t, e, "/api/conditions/12").Code)
	})

	t.Run("properties", func(t *testing.T) {
		props := decode[[]models.ConditionProperty](t, get(t, e, "/api/conditions/10/properties"))
		assert.Len(t, props, 4)

		props = decode[[]models.ConditionProperty](t, get(t, e, "/api/conditions/10/properties?key=yield_strength"))
		require.Len(t, props, 1)
		assert.Equal(t, "yield_strength", *props[0].PropKey)

		props = decode[[]models.ConditionProperty](t, get(t, e, "/api/conditions/10/properties?limit=2"))
		assert.Len(t, props, 2)
	})

	t.Run("curves and points", func(t *testing.T) {
		curves := decode[[]models.Curve](t, get(t, e, "/api/conditions/10/curves"))
		require.Len(t, curves, 1)
		assert.Equal(t, int64(100), curves[0].ID)

		curve := decode[models.Curve](t, get(t, e, "/api/curves/101"))
		assert.Equal(t, int64(21), curve.ConditionID)

		points := decode[[]models.CurvePoint](t, get(t, e, "/api/curves/100/points"))
		require.Len(t, points, 5)
		for i, p := range points {
			assert.Equal(t, i, p.Idx)
		}

		assert.Equal(t, http.StatusNotFound, get(t, e, "/api/curves/999").Code)
	})
}

func TestSeededAPIWithCache(t *testing.T) {
	srv := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(cache.Config{Host: srv.Host(), Port: mustPort(t, srv), Prefix: "alloy:"}, testutil.Logger())
	t.Cleanup(func() { _ = redisCache.Close() })

	e := seededAPI(t, NewResponseCache(redisCache, time.Minute, testutil.Logger()))

	first := get(t, e, "/api/materials/1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, srv.Exists("alloy:material:1"))

	second := get(t, e, "/api/materials/1")
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// misses are not cached
	assert.Equal(t, http.StatusNotFound, get(t, e, "/api/materials/999").Code)
	assert.False(t, srv.Exists("alloy:material:999"))
}

func mustPort(t *testing.T, srv *miniredis.Miniredis) int {
	t.Helper()
	var port int
	_, err := fmt.Sscanf(srv.Port(), "%d", &port)
	require.NoError(t, err)
	return port
}
