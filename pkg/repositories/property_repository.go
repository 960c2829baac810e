package repositories

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/models"
	"github.com/Ramsey-B/alloy/pkg/tracing"
)

const conditionPropertiesTable = "condition_properties"

var conditionPropertyStruct = database.NewStruct(new(models.ConditionProperty))

// ConditionPropertyRepository handles database operations for condition properties
type ConditionPropertyRepository struct {
	*Repository
}

// NewConditionPropertyRepository creates a new condition property repository
func NewConditionPropertyRepository(db database.DB, logger ectologger.Logger) *ConditionPropertyRepository {
	return &ConditionPropertyRepository{
		Repository: NewRepository(db, logger),
	}
}

// ListByConditionID lists up to limit properties of a condition ordered by id
func (r *ConditionPropertyRepository) ListByConditionID(ctx context.Context, conditionID int64, limit int) ([]models.ConditionProperty, error) {
	ctx, span := tracing.StartSpan(ctx, "ConditionPropertyRepository.ListByConditionID")
	defer span.End()

	sb := conditionPropertyStruct.SelectFrom(r.DB().Flavor(), conditionPropertiesTable)
	sb.Where(sb.Equal("condition_id", conditionID))
	sb.OrderBy("id").Limit(limit)

	query, args := sb.Build()
	return r.list(ctx, query, args, map[string]any{"condition_id": conditionID, "limit": limit})
}

// ListByConditionIDAndKey lists properties of a condition with exactly the given key
func (r *ConditionPropertyRepository) ListByConditionIDAndKey(ctx context.Context, conditionID int64, key string, limit int) ([]models.ConditionProperty, error) {
	ctx, span := tracing.StartSpan(ctx, "ConditionPropertyRepository.ListByConditionIDAndKey")
	defer span.End()

	sb := conditionPropertyStruct.SelectFrom(r.DB().Flavor(), conditionPropertiesTable)
	sb.Where(sb.Equal("condition_id", conditionID), sb.Equal("prop_key", key))
	sb.OrderBy("id").Limit(limit)

	query, args := sb.Build()
	return r.list(ctx, query, args, map[string]any{"condition_id": conditionID, "prop_key": key, "limit": limit})
}

func (r *ConditionPropertyRepository) list(ctx context.Context, query string, args []any, fields map[string]any) ([]models.ConditionProperty, error) {
	properties := []models.ConditionProperty{}
	if err := r.DB().SelectContext(ctx, &properties, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(fields).Error("failed to list condition properties")
		return nil, Internal("failed to list condition properties")
	}

	r.logger.WithContext(ctx).WithFields(fields).Debugf("Listed %d %s", len(properties), conditionPropertiesTable)
	return properties, nil
}
