package models

// Material is a reference material with its headline physical properties.
// Nullable columns are pointers so that absent values serialize as null.
type Material struct {
	ID                  int64    `db:"id" json:"id"`
	Name                *string  `db:"name" json:"name"`
	Category            *string  `db:"category" json:"category"`
	Family              *string  `db:"family" json:"family"`
	Grade               *string  `db:"grade" json:"grade"`
	StandardSystem      *string  `db:"standard_system" json:"standard_system"`
	StandardDesignation *string  `db:"standard_designation" json:"standard_designation"`
	UNS                 *string  `db:"uns" json:"uns"`
	ENNumber            *string  `db:"en_number" json:"en_number"`
	Tags                *string  `db:"tags" json:"tags"`
	Notes               *string  `db:"notes" json:"notes"`
	SourceType          *string  `db:"source_type" json:"source_type"`
	SourceName          *string  `db:"source_name" json:"source_name"`
	Confidence          *string  `db:"confidence" json:"confidence"`
	Density             *float64 `db:"density" json:"density"`
	YoungsModulus       *float64 `db:"youngs_modulus" json:"youngs_modulus"`
	PoissonRatio        *float64 `db:"poisson_ratio" json:"poisson_ratio"`
	YieldStrength       *float64 `db:"yield_strength" json:"yield_strength"`
	UltimateStrength    *float64 `db:"ultimate_strength" json:"ultimate_strength"`
	Toughness           *float64 `db:"toughness" json:"toughness"`
	ThermalExpansion    *float64 `db:"thermal_expansion" json:"thermal_expansion"`
	MeltingPoint        *float64 `db:"melting_point" json:"melting_point"`
	ThermalConductivity *float64 `db:"thermal_conductivity" json:"thermal_conductivity"`
	CreatedAt           *string  `db:"created_at" json:"created_at"`
	UpdatedAt           *string  `db:"updated_at" json:"updated_at"`
	DefaultConditionID  *int64   `db:"default_condition_id" json:"default_condition_id"`
}

// TableName returns the database table name
func (Material) TableName() string {
	return "materials"
}

// MaterialColumns lists the materials columns in insert order.
var MaterialColumns = []string{
	"id", "name", "category", "family", "grade",
	"standard_system", "standard_designation", "uns", "en_number",
	"tags", "notes", "source_type", "source_name", "confidence",
	"density", "youngs_modulus", "poisson_ratio", "yield_strength", "ultimate_strength",
	"toughness", "thermal_expansion", "melting_point", "thermal_conductivity",
	"created_at", "updated_at", "default_condition_id",
}

// Values returns the column values in MaterialColumns order.
func (m *Material) Values() []any {
	return []any{
		m.ID, m.Name, m.Category, m.Family, m.Grade,
		m.StandardSystem, m.StandardDesignation, m.UNS, m.ENNumber,
		m.Tags, m.Notes, m.SourceType, m.SourceName, m.Confidence,
		m.Density, m.YoungsModulus, m.PoissonRatio, m.YieldStrength, m.UltimateStrength,
		m.Toughness, m.ThermalExpansion, m.MeltingPoint, m.ThermalConductivity,
		m.CreatedAt, m.UpdatedAt, m.DefaultConditionID,
	}
}
