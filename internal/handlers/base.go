package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/alloy/pkg/cache"
)

// Limits for the listing endpoints.
const (
	DefaultMaterialLimit = 50
	MaxMaterialLimit     = 500
	DefaultPropertyLimit = 200
	MaxPropertyLimit     = 2000
)

// ParseID parses a numeric id from a path parameter
func ParseID(c echo.Context, param string) (int64, error) {
	idStr := c.Param(param)
	if idStr == "" {
		return 0, httperror.NewHTTPError(http.StatusBadRequest, "missing "+param)
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid %s: must be an integer", param)
	}

	return id, nil
}

// ParseLimit reads the limit query parameter and clamps it to [1, max].
func ParseLimit(c echo.Context, def, max int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("limit"))
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, BadRequest("invalid limit: must be an integer")
	}

	return ClampLimit(limit, max), nil
}

func ClampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// queryFilter returns the trimmed query value; blank counts as absent.
func queryFilter(c echo.Context, name string) string {
	return strings.TrimSpace(c.QueryParam(name))
}

// SuccessResponse returns a 200 OK with data
func SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// BadRequest returns a 400 Bad Request error
func BadRequest(message string) error {
	return httperror.NewHTTPError(http.StatusBadRequest, message)
}

// ResponseCache wraps read calls in the optional response cache. A nil
// *ResponseCache calls straight through.
type ResponseCache struct {
	store  cache.Cache
	ttl    time.Duration
	logger ectologger.Logger
}

func NewResponseCache(store cache.Cache, ttl time.Duration, logger ectologger.Logger) *ResponseCache {
	return &ResponseCache{store: store, ttl: ttl, logger: logger}
}

func cached[T any](ctx context.Context, rc *ResponseCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if rc == nil || rc.store == nil {
		return load(ctx)
	}
	return cache.Fetch(ctx, rc.store, rc.logger, key, rc.ttl, load)
}
