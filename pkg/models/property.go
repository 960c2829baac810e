package models

// ConditionProperty is a single measured or specified value for a condition.
// Either ValueNum or ValueText is normally set.
type ConditionProperty struct {
	ID           int64    `db:"id" json:"id"`
	ConditionID  int64    `db:"condition_id" json:"condition_id"`
	PropKey      *string  `db:"prop_key" json:"prop_key"`
	PropName     *string  `db:"prop_name" json:"prop_name"`
	ValueNum     *float64 `db:"value_num" json:"value_num"`
	ValueText    *string  `db:"value_text" json:"value_text"`
	Unit         *string  `db:"unit" json:"unit"`
	Basis        *string  `db:"basis" json:"basis"`
	Method       *string  `db:"method" json:"method"`
	Standard     *string  `db:"standard" json:"standard"`
	Notes        *string  `db:"notes" json:"notes"`
	TemperatureC *float64 `db:"temperature_c" json:"temperature_c"`
	StrainRate   *float64 `db:"strain_rate" json:"strain_rate"`
	FrequencyHz  *float64 `db:"frequency_hz" json:"frequency_hz"`
	Environment  *string  `db:"environment" json:"environment"`
	Uncertainty  *float64 `db:"uncertainty" json:"uncertainty"`
	Confidence   *string  `db:"confidence" json:"confidence"`
}

// TableName returns the database table name
func (ConditionProperty) TableName() string {
	return "condition_properties"
}

// ConditionPropertyColumns omits id, which the store generates.
var ConditionPropertyColumns = []string{
	"condition_id", "prop_key", "prop_name", "value_num", "value_text",
	"unit", "basis", "method", "standard", "notes",
	"temperature_c", "strain_rate", "frequency_hz", "environment", "uncertainty", "confidence",
}

func (p *ConditionProperty) Values() []any {
	return []any{
		p.ConditionID, p.PropKey, p.PropName, p.ValueNum, p.ValueText,
		p.Unit, p.Basis, p.Method, p.Standard, p.Notes,
		p.TemperatureC, p.StrainRate, p.FrequencyHz, p.Environment, p.Uncertainty, p.Confidence,
	}
}
