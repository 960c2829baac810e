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

const (
	curvesTable      = "curves"
	curvePointsTable = "curve_points"
)

var (
	curveStruct      = database.NewStruct(new(models.Curve))
	curvePointStruct = database.NewStruct(new(models.CurvePoint))
)

// CurveRepository handles database operations for curves
type CurveRepository struct {
	*Repository
}

// NewCurveRepository creates a new curve repository
func NewCurveRepository(db database.DB, logger ectologger.Logger) *CurveRepository {
	return &CurveRepository{
		Repository: NewRepository(db, logger),
	}
}

// GetByID retrieves a curve by ID
func (r *CurveRepository) GetByID(ctx context.Context, id int64) (*models.Curve, error) {
	ctx, span := tracing.StartSpan(ctx, "CurveRepository.GetByID")
	defer span.End()

	sb := curveStruct.SelectFrom(r.DB().Flavor(), curvesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var curve models.Curve
	err := r.DB().GetContext(ctx, &curve, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Curve not found: %d", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"curve_id": id,
		}).Error("failed to get curve by ID")
		return nil, Internal("failed to get curve by ID")
	}

	return &curve, nil
}

// ListByConditionID lists a condition's curves ordered by curve type, then id
func (r *CurveRepository) ListByConditionID(ctx context.Context, conditionID int64) ([]models.Curve, error) {
	ctx, span := tracing.StartSpan(ctx, "CurveRepository.ListByConditionID")
	defer span.End()

	sb := curveStruct.SelectFrom(r.DB().Flavor(), curvesTable)
	sb.Where(sb.Equal("condition_id", conditionID))
	sb.OrderBy("curve_type", "id")

	query, args := sb.Build()
	curves := []models.Curve{}
	if err := r.DB().SelectContext(ctx, &curves, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"condition_id": conditionID,
		}).Error("failed to list curves")
		return nil, Internal("failed to list curves")
	}

	return curves, nil
}

// CurvePointRepository handles database operations for curve points
type CurvePointRepository struct {
	*Repository
}

func NewCurvePointRepository(db database.DB, logger ectologger.Logger) *CurvePointRepository {
	return &CurvePointRepository{
		Repository: NewRepository(db, logger),
	}
}

// ListByCurveID returns a curve's points in ascending idx order
func (r *CurvePointRepository) ListByCurveID(ctx context.Context, curveID int64) ([]models.CurvePoint, error) {
	ctx, span := tracing.StartSpan(ctx, "CurvePointRepository.ListByCurveID")
	defer span.End()

	sb := curvePointStruct.SelectFrom(r.DB().Flavor(), curvePointsTable)
	sb.Where(sb.Equal("curve_id", curveID))
	sb.OrderBy("idx")

	query, args := sb.Build()
	points := []models.CurvePoint{}
	if err := r.DB().SelectContext(ctx, &points, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"curve_id": curveID,
		}).Error("failed to list curve points")
		return nil, Internal("failed to list curve points")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"curve_id":    curveID,
		"point_count": len(points),
	}).Debugf("Listed %s", curvePointsTable)
	return points, nil
}
