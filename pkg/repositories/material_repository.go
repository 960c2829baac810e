package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/tracing"
)

const materialsTable = "materials"

var materialStruct = database.NewStruct(new(models.Material))

// MaterialRepository handles database operations for materials
type MaterialRepository struct {
	*Repository
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db database.DB, logger ectologger.Logger) *MaterialRepository {
	return &MaterialRepository{
		Repository: NewRepository(db, logger),
	}
}

// GetByID retrieves a material by ID
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	ctx, span := tracing.StartSpan(ctx, "MaterialRepository.GetByID")
	defer span.End()

	sb := materialStruct.SelectFrom(r.DB().Flavor(), materialsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var material models.Material
	err := r.DB().GetContext(ctx, &material, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Material not found: %d", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"material_id": id,
		}).Error("failed to get material by ID")
		return nil, Internal("failed to get material by ID")
	}

	return &material, nil
}

// List returns up to limit materials ordered by name
func (r *MaterialRepository) List(ctx context.Context, limit int) ([]models.Material, error) {
	ctx, span := tracing.StartSpan(ctx, "MaterialRepository.List")
	defer span.End()

	sb := materialStruct.SelectFrom(r.DB().Flavor(), materialsTable)
	sb.OrderBy("name", "id").Limit(limit)

	return r.selectMaterials(ctx, sb.Build, map[string]any{"limit": limit}, "failed to list materials")
}

// SearchByName returns materials whose name contains query, ordered by name
func (r *MaterialRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Material, error) {
	ctx, span := tracing.StartSpan(ctx, "MaterialRepository.SearchByName")
	defer span.End()

	sb := materialStruct.SelectFrom(r.DB().Flavor(), materialsTable)
	sb.Where(sb.Like("name", "%"+query+"%"))
	sb.OrderBy("name", "id").Limit(limit)

	return r.selectMaterials(ctx, sb.Build, map[string]any{"name": query, "limit": limit}, "failed to search materials")
}

// ListByCategory returns materials with exactly the given category, ordered by name
func (r *MaterialRepository) ListByCategory(ctx context.Context, category string, limit int) ([]models.Material, error) {
	ctx, span := tracing.StartSpan(ctx, "MaterialRepository.ListByCategory")
	defer span.End()

	sb := materialStruct.SelectFrom(r.DB().Flavor(), materialsTable)
	sb.Where(sb.Equal("category", category))
	sb.OrderBy("name", "id").Limit(limit)

	return r.selectMaterials(ctx, sb.Build, map[string]any{"category": category, "limit": limit}, "failed to list materials by category")
}

// Count returns the number of stored materials
func (r *MaterialRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "MaterialRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder(r.DB().Flavor())
	sb.Select(sb.As("COUNT(*)", "count")).From(materialsTable)

	query, args := sb.Build()
	var count int64
	if err := r.DB().GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count materials")
		return 0, Internal("failed to count materials")
	}

	return count, nil
}

func (r *MaterialRepository) selectMaterials(ctx context.Context, build func() (string, []any), fields map[string]any, message string) ([]models.Material, error) {
	query, args := build()
	materials := []models.Material{}
	if err := r.DB().SelectContext(ctx, &materials, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(fields).Error(message)
		return nil, Internal(message)
	}

	r.logger.WithContext(ctx).WithFields(fields).Debugf("Listed %d %s", len(materials), materialsTable)
	return materials, nil
}
