package repositories

import (
	"context"

	"github.com/Ramsey-B/alloy/pkg/models"
)

// MaterialRepo defines the interface for material repository operations
type MaterialRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	List(ctx context.Context, limit int) ([]models.Material, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Material, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]models.Material, error)
	Count(ctx context.Context) (int64, error)
}

// ConditionRepo defines the interface for condition repository operations
type ConditionRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Condition, error)
	ListByMaterialID(ctx context.Context, materialID int64) ([]models.Condition, error)
	GetDefaultForMaterial(ctx context.Context, materialID int64) (*models.Condition, error)
}

// ConditionPropertyRepo defines the interface for condition property repository operations
type ConditionPropertyRepo interface {
	ListByConditionID(ctx context.Context, conditionID int64, limit int) ([]models.ConditionProperty, error)
	ListByConditionIDAndKey(ctx context.Context, conditionID int64, key string, limit int) ([]models.ConditionProperty, error)
}

// CurveRepo defines the interface for curve repository operations
type CurveRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Curve, error)
	ListByConditionID(ctx context.Context, conditionID int64) ([]models.Curve, error)
}

// CurvePointRepo defines the interface for curve point repository operations
type CurvePointRepo interface {
	ListByCurveID(ctx context.Context, curveID int64) ([]models.CurvePoint, error)
}
