package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/repositories"
)

// MaterialHandler handles material-related API requests
type MaterialHandler struct {
	materials  repositories.MaterialRepo
	conditions repositories.ConditionRepo
	cache      *ResponseCache
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(materials repositories.MaterialRepo, conditions repositories.ConditionRepo, cache *ResponseCache) *MaterialHandler {
	return &MaterialHandler{
		materials:  materials,
		conditions: conditions,
		cache:      cache,
	}
}

// RegisterRoutes registers the material routes
func (h *MaterialHandler) RegisterRoutes(g *echo.Group) {
	materials := g.Group("/materials")
	materials.GET("", h.List)
	materials.GET("/:id", h.Get)
	materials.GET("/:id/conditions", h.ListConditions)
	materials.GET("/:id/default-condition", h.GetDefaultCondition)
}

// List handles GET /materials. A name filter wins over category.
func (h *MaterialHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit, err := ParseLimit(c, DefaultMaterialLimit, MaxMaterialLimit)
	if err != nil {
		return err
	}

	name := queryFilter(c, "name")
	category := queryFilter(c, "category")

	var (
		key  string
		load func(ctx context.Context) ([]models.Material, error)
	)
	switch {
	case name != "":
		key = fmt.Sprintf("materials:name:%s:%d", name, limit)
		load = func(ctx context.Context) ([]models.Material, error) {
			return h.materials.SearchByName(ctx, name, limit)
		}
	case category != "":
		key = fmt.Sprintf("materials:category:%s:%d", category, limit)
		load = func(ctx context.Context) ([]models.Material, error) {
			return h.materials.ListByCategory(ctx, category, limit)
		}
	default:
		key = fmt.Sprintf("materials:all:%d", limit)
		load = func(ctx context.Context) ([]models.Material, error) {
			return h.materials.List(ctx, limit)
		}
	}

	materials, err := cached(ctx, h.cache, key, load)
	if err != nil {
		return err
	}

	return SuccessResponse(c, materials)
}

// Get handles GET /materials/:id
func (h *MaterialHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	material, err := cached(ctx, h.cache, fmt.Sprintf("material:%d", id), func(ctx context.Context) (*models.Material, error) {
		return h.materials.GetByID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, material)
}

// ListConditions handles GET /materials/:id/conditions
func (h *MaterialHandler) ListConditions(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	conditions, err := cached(ctx, h.cache, fmt.Sprintf("material:%d:conditions", id), func(ctx context.Context) ([]models.Condition, error) {
		return h.conditions.ListByMaterialID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, conditions)
}

// GetDefaultCondition handles GET /materials/:id/default-condition
func (h *MaterialHandler) GetDefaultCondition(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	condition, err := cached(ctx, h.cache, fmt.Sprintf("material:%d:default-condition", id), func(ctx context.Context) (*models.Condition, error) {
		return h.conditions.GetDefaultForMaterial(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, condition)
}
