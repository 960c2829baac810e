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

const conditionsTable = "conditions"

var conditionStruct = database.NewStruct(new(models.Condition))

// ConditionRepository handles database operations for material conditions
type ConditionRepository struct {
	*Repository
}

// NewConditionRepository creates a new condition repository
func NewConditionRepository(db database.DB, logger ectologger.Logger) *ConditionRepository {
	return &ConditionRepository{
		Repository: NewRepository(db, logger),
	}
}

// GetByID retrieves a condition by ID
func (r *ConditionRepository) GetByID(ctx context.Context, id int64) (*models.Condition, error) {
	ctx, span := tracing.StartSpan(ctx, "ConditionRepository.GetByID")
	defer span.End()

	sb := conditionStruct.SelectFrom(r.DB().Flavor(), conditionsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var condition models.Condition
	err := r.DB().GetContext(ctx, &condition, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Condition not found: %d", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"condition_id": id,
		}).Error("failed to get condition by ID")
		return nil, Internal("failed to get condition by ID")
	}

	return &condition, nil
}

// ListByMaterialID lists a material's conditions, default-flagged first, then by id
func (r *ConditionRepository) ListByMaterialID(ctx context.Context, materialID int64) ([]models.Condition, error) {
	ctx, span := tracing.StartSpan(ctx, "ConditionRepository.ListByMaterialID")
	defer span.End()

	sb := conditionStruct.SelectFrom(r.DB().Flavor(), conditionsTable)
	sb.Where(sb.Equal("material_id", materialID))
	sb.OrderBy("is_default DESC", "id")

	query, args := sb.Build()
	conditions := []models.Condition{}
	if err := r.DB().SelectContext(ctx, &conditions, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"material_id": materialID,
		}).Error("failed to list conditions")
		return nil, Internal("failed to list conditions")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"material_id":     materialID,
		"condition_count": len(conditions),
	}).Debugf("Listed %s", conditionsTable)
	return conditions, nil
}

// GetDefaultForMaterial returns the material's default-flagged condition. When
// more than one is flagged the lowest id wins.
func (r *ConditionRepository) GetDefaultForMaterial(ctx context.Context, materialID int64) (*models.Condition, error) {
	ctx, span := tracing.StartSpan(ctx, "ConditionRepository.GetDefaultForMaterial")
	defer span.End()

	sb := conditionStruct.SelectFrom(r.DB().Flavor(), conditionsTable)
	sb.Where(sb.Equal("material_id", materialID), sb.Equal("is_default", 1))
	sb.OrderBy("id").Limit(1)

	query, args := sb.Build()
	var condition models.Condition
	err := r.DB().GetContext(ctx, &condition, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Default condition not found for material: %d", materialID)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"material_id": materialID,
		}).Error("failed to get default condition")
		return nil, Internal("failed to get default condition")
	}

	return &condition, nil
}
