package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/repositories"
)

// ConditionHandler handles condition-related API requests
type ConditionHandler struct {
	conditions repositories.ConditionRepo
	properties repositories.ConditionPropertyRepo
	curves     repositories.CurveRepo
	cache      *ResponseCache
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(conditions repositories.ConditionRepo, properties repositories.ConditionPropertyRepo, curves repositories.CurveRepo, cache *ResponseCache) *ConditionHandler {
	return &ConditionHandler{
		conditions: conditions,
		properties: properties,
		curves:     curves,
		cache:      cache,
	}
}

// RegisterRoutes registers the condition routes
func (h *ConditionHandler) RegisterRoutes(g *echo.Group) {
	conditions := g.Group("/conditions")
	conditions.GET("/:id", h.Get)
	conditions.GET("/:id/properties", h.ListProperties)
	conditions.GET("/:id/curves", h.ListCurves)
}

// Get handles GET /conditions/:id
func (h *ConditionHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	condition, err := cached(ctx, h.cache, fmt.Sprintf("condition:%d", id), func(ctx context.Context) (*models.Condition, error) {
		return h.conditions.GetByID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, condition)
}

// ListProperties handles GET /conditions/:id/properties. key narrows the
// result to one exact prop_key.
func (h *ConditionHandler) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	limit, err := ParseLimit(c, DefaultPropertyLimit, MaxPropertyLimit)
	if err != nil {
		return err
	}

	key := queryFilter(c, "key")

	cacheKey := fmt.Sprintf("condition:%d:properties:%d", id, limit)
	load := func(ctx context.Context) ([]models.ConditionProperty, error) {
		return h.properties.ListByConditionID(ctx, id, limit)
	}
	if key != "" {
		cacheKey = fmt.Sprintf("condition:%d:properties:%s:%d", id, key, limit)
		load = func(ctx context.Context) ([]models.ConditionProperty, error) {
			return h.properties.ListByConditionIDAndKey(ctx, id, key, limit)
		}
	}

	properties, err := cached(ctx, h.cache, cacheKey, load)
	if err != nil {
		return err
	}

	return SuccessResponse(c, properties)
}

// ListCurves handles GET /conditions/:id/curves
func (h *ConditionHandler) ListCurves(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	curves, err := cached(ctx, h.cache, fmt.Sprintf("condition:%d:curves", id), func(ctx context.Context) ([]models.Curve, error) {
		return h.curves.ListByConditionID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, curves)
}
