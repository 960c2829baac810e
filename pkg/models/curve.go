package models

// Curve describes a sampled test curve (stress-strain, S-N, ...) for a condition.
type Curve struct {
	ID               int64    `db:"id" json:"id"`
	ConditionID      int64    `db:"condition_id" json:"condition_id"`
	CurveType        *string  `db:"curve_type" json:"curve_type"`
	XLabel           *string  `db:"x_label" json:"x_label"`
	YLabel           *string  `db:"y_label" json:"y_label"`
	XUnit            *string  `db:"x_unit" json:"x_unit"`
	YUnit            *string  `db:"y_unit" json:"y_unit"`
	TestTemperatureC *float64 `db:"test_temperature_c" json:"test_temperature_c"`
	StrainRate       *float64 `db:"strain_rate" json:"strain_rate"`
	FrequencyHz      *float64 `db:"frequency_hz" json:"frequency_hz"`
	Environment      *string  `db:"environment" json:"environment"`
	Standard         *string  `db:"standard" json:"standard"`
	Notes            *string  `db:"notes" json:"notes"`
	CreatedAt        *string  `db:"created_at" json:"created_at"`
	UpdatedAt        *string  `db:"updated_at" json:"updated_at"`
}

// TableName returns the database table name
func (Curve) TableName() string {
	return "curves"
}

var CurveColumns = []string{
	"id", "condition_id", "curve_type", "x_label", "y_label",
	"x_unit", "y_unit", "test_temperature_c", "strain_rate", "frequency_hz",
	"environment", "standard", "notes", "created_at", "updated_at",
}

func (c *Curve) Values() []any {
	return []any{
		c.ID, c.ConditionID, c.CurveType, c.XLabel, c.YLabel,
		c.XUnit, c.YUnit, c.TestTemperatureC, c.StrainRate, c.FrequencyHz,
		c.Environment, c.Standard, c.Notes, c.CreatedAt, c.UpdatedAt,
	}
}

// CurvePoint is one sample of a curve. Idx is the 0-based position in the curve.
type CurvePoint struct {
	CurveID int64    `db:"curve_id" json:"curve_id"`
	Idx     int      `db:"idx" json:"idx"`
	X       float64  `db:"x" json:"x"`
	Y       float64  `db:"y" json:"y"`
	Z       *float64 `db:"z" json:"z"`
}

// TableName returns the database table name
func (CurvePoint) TableName() string {
	return "curve_points"
}

var CurvePointColumns = []string{"curve_id", "idx", "x", "y", "z"}

func (p *CurvePoint) Values() []any {
	return []any{p.CurveID, p.Idx, p.X, p.Y, p.Z}
}
