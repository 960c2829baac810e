package models

// Condition is a processing state of a material (heat treatment, product form).
type Condition struct {
	ID            int64   `db:"id" json:"id"`
	MaterialID    int64   `db:"material_id" json:"material_id"`
	ConditionName *string `db:"condition_name" json:"condition_name"`
	ProcessRoute  *string `db:"process_route" json:"process_route"`
	ProductForm   *string `db:"product_form" json:"product_form"`
	HeatTreatment *string `db:"heat_treatment" json:"heat_treatment"`
	Notes         *string `db:"notes" json:"notes"`
	IsDefault     bool    `db:"is_default" json:"is_default"`
	CreatedAt     *string `db:"created_at" json:"created_at"`
	UpdatedAt     *string `db:"updated_at" json:"updated_at"`
}

// TableName returns the database table name
func (Condition) TableName() string {
	return "conditions"
}

var ConditionColumns = []string{
	"id", "material_id", "condition_name", "process_route", "product_form",
	"heat_treatment", "notes", "is_default", "created_at", "updated_at",
}

// Values returns the column values in ConditionColumns order. is_default is
// stored as the integer 1 or 0.
func (c *Condition) Values() []any {
	isDefault := 0
	if c.IsDefault {
		isDefault = 1
	}
	return []any{
		c.ID, c.MaterialID, c.ConditionName, c.ProcessRoute, c.ProductForm,
		c.HeatTreatment, c.Notes, isDefault, c.CreatedAt, c.UpdatedAt,
	}
}
