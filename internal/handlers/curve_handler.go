package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/repositories"
)

// CurveHandler handles curve-related API requests
type CurveHandler struct {
	curves repositories.CurveRepo
	points repositories.CurvePointRepo
	cache  *ResponseCache
}

// NewCurveHandler creates a new curve handler
func NewCurveHandler(curves repositories.CurveRepo, points repositories.CurvePointRepo, cache *ResponseCache) *CurveHandler {
	return &CurveHandler{curves: curves, points: points, cache: cache}
}

// RegisterRoutes registers the curve routes
func (h *CurveHandler) RegisterRoutes(g *echo.Group) {
	curves := g.Group("/curves")
	curves.GET("/:id", h.Get)
	curves.GET("/:id/points", h.ListPoints)
}

// Get handles GET /curves/:id
func (h *CurveHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	curve, err := cached(ctx, h.cache, fmt.Sprintf("curve:%d", id), func(ctx context.Context) (*models.Curve, error) {
		return h.curves.GetByID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, curve)
}

// ListPoints handles GET /curves/:id/points
func (h *CurveHandler) ListPoints(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	points, err := cached(ctx, h.cache, fmt.Sprintf("curve:%d:points", id), func(ctx context.Context) ([]models.CurvePoint, error) {
		return h.points.ListByCurveID(ctx, id)
	})
	if err != nil {
		return err
	}

	return SuccessResponse(c, points)
}
