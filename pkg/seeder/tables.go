package seeder

import (
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/models"
)

// table describes how one dataset file maps onto one store table.
type table struct {
	name      string
	file      string
	required  []string
	columns   []string
	batchSize int
	row       func(r *recordReader) ([]any, error)
}

func materialsTable(batchSize int, defaults map[int64]int64) table {
	return table{
		name:      "materials",
		file:      dataset.MaterialsFile,
		required:  models.MaterialColumns,
		columns:   models.MaterialColumns,
		batchSize: batchSize,
		row: func(r *recordReader) ([]any, error) {
			id, err := r.ID("id")
			if err != nil {
				return nil, err
			}
			if def := r.OptionalID("default_condition_id"); def != nil {
				defaults[id] = *def
			}

			m := models.Material{
				ID:                  id,
				Name:                r.Text("name"),
				Category:            r.Text("category"),
				Family:              r.Text("family"),
				Grade:               r.Text("grade"),
				StandardSystem:      r.Text("standard_system"),
				StandardDesignation: r.Text("standard_designation"),
				UNS:                 r.Text("uns"),
				ENNumber:            r.Text("en_number"),
				Tags:                r.Text("tags"),
				Notes:               r.Text("notes"),
				SourceType:          r.Text("source_type"),
				SourceName:          r.Text("source_name"),
				Confidence:          r.Text("confidence"),
				Density:             r.Float("density"),
				YoungsModulus:       r.Float("youngs_modulus"),
				PoissonRatio:        r.Float("poisson_ratio"),
				YieldStrength:       r.Float("yield_strength"),
				UltimateStrength:    r.Float("ultimate_strength"),
				Toughness:           r.Float("toughness"),
				ThermalExpansion:    r.Float("thermal_expansion"),
				MeltingPoint:        r.Float("melting_point"),
				ThermalConductivity: r.Float("thermal_conductivity"),
				CreatedAt:           r.Text("created_at"),
				UpdatedAt:           r.Text("updated_at"),
				// set by the second pass once conditions exist
				DefaultConditionID: nil,
			}
			return m.Values(), nil
		},
	}
}

func conditionsTable(batchSize int) table {
	return table{
		name:      "conditions",
		file:      dataset.ConditionsFile,
		required:  models.ConditionColumns,
		columns:   models.ConditionColumns,
		batchSize: batchSize,
		row: func(r *recordReader) ([]any, error) {
			id, err := r.ID("id")
			if err != nil {
				return nil, err
			}
			materialID, err := r.ID("material_id")
			if err != nil {
				return nil, err
			}

			c := models.Condition{
				ID:            id,
				MaterialID:    materialID,
				ConditionName: r.Text("condition_name"),
				ProcessRoute:  r.Text("process_route"),
				ProductForm:   r.Text("product_form"),
				HeatTreatment: r.Text("heat_treatment"),
				Notes:         r.Text("notes"),
				IsDefault:     r.Bool("is_default"),
				CreatedAt:     r.Text("created_at"),
				UpdatedAt:     r.Text("updated_at"),
			}
			return c.Values(), nil
		},
	}
}

func conditionPropertiesTable(batchSize int) table {
	return table{
		name:      "condition_properties",
		file:      dataset.ConditionPropertiesFile,
		required:  models.ConditionPropertyColumns,
		columns:   models.ConditionPropertyColumns,
		batchSize: batchSize,
		row: func(r *recordReader) ([]any, error) {
			conditionID, err := r.ID("condition_id")
			if err != nil {
				return nil, err
			}

			p := models.ConditionProperty{
				ConditionID:  conditionID,
				PropKey:      r.Text("prop_key"),
				PropName:     r.Text("prop_name"),
				ValueNum:     r.Float("value_num"),
				ValueText:    r.Text("value_text"),
				Unit:         r.Text("unit"),
				Basis:        r.Text("basis"),
				Method:       r.Text("method"),
				Standard:     r.Text("standard"),
				Notes:        r.Text("notes"),
				TemperatureC: r.Float("temperature_c"),
				StrainRate:   r.Float("strain_rate"),
				FrequencyHz:  r.Float("frequency_hz"),
				Environment:  r.Text("environment"),
				Uncertainty:  r.Float("uncertainty"),
				Confidence:   r.Text("confidence"),
			}
			return p.Values(), nil
		},
	}
}

func curvesTable(batchSize int) table {
	return table{
		name:      "curves",
		file:      dataset.CurvesFile,
		required:  models.CurveColumns,
		columns:   models.CurveColumns,
		batchSize: batchSize,
		row: func(r *recordReader) ([]any, error) {
			id, err := r.ID("id")
			if err != nil {
				return nil, err
			}
			conditionID, err := r.ID("condition_id")
			if err != nil {
				return nil, err
			}

			c := models.Curve{
				ID:               id,
				ConditionID:      conditionID,
				CurveType:        r.Text("curve_type"),
				XLabel:           r.Text("x_label"),
				YLabel:           r.Text("y_label"),
				XUnit:            r.Text("x_unit"),
				YUnit:            r.Text("y_unit"),
				TestTemperatureC: r.Float("test_temperature_c"),
				StrainRate:       r.Float("strain_rate"),
				FrequencyHz:      r.Float("frequency_hz"),
				Environment:      r.Text("environment"),
				Standard:         r.Text("standard"),
				Notes:            r.Text("notes"),
				CreatedAt:        r.Text("created_at"),
				UpdatedAt:        r.Text("updated_at"),
			}
			return c.Values(), nil
		},
	}
}

func curvePointsTable(batchSize int) table {
	return table{
		name:      "curve_points",
		file:      dataset.CurvePointsFile,
		required:  models.CurvePointColumns,
		columns:   models.CurvePointColumns,
		batchSize: batchSize,
		row: func(r *recordReader) ([]any, error) {
			curveID, err := r.ID("curve_id")
			if err != nil {
				return nil, err
			}
			idx, err := r.ID("idx")
			if err != nil {
				return nil, err
			}
			x, err := r.RequiredFloat("x")
			if err != nil {
				return nil, err
			}
			y, err := r.RequiredFloat("y")
			if err != nil {
				return nil, err
			}

			p := models.CurvePoint{
				CurveID: curveID,
				Idx:     int(idx),
				X:       x,
				Y:       y,
				Z:       r.Float("z"),
			}
			return p.Values(), nil
		},
	}
}
