package mapping

import (
	"fmt"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	"chartadvisor/domain/dataset"
)

// Compose establishes the clean mapping contract when a chart type is chosen.
// Role semantics differ per chart type, so measures are emptied and every
// optional role is cleared; the previous mapping is accepted for signature
// symmetry with role changes but contributes nothing. The caller's UI drives
// population through ApplyRoleChange.
func Compose(chartType chart.Type, fields []dataset.FieldDescriptor, prev *chart.FieldMapping) chart.FieldMapping {
	_ = chartType
	_ = fields
	_ = prev
	return chart.NewFieldMapping()
}

// ApplyRoleChange binds, toggles, or clears one role and returns a new
// mapping value; the input is never mutated.
//
// Single-valued roles only require the field to exist: they are presentation
// roles, not strictly type-checked bindings. The measures role is
// multi-valued and toggles membership; binding a measure additionally
// requires the field to be numeric. Clearing any single-valued role (empty
// field name) always succeeds.
func ApplyRoleChange(m chart.FieldMapping, fields []dataset.FieldDescriptor, role chart.Role, fieldName string) (chart.FieldMapping, error) {
	out := m.Clone()

	if role == chart.RoleMeasures {
		return toggleMeasure(out, fields, fieldName)
	}

	slot, err := roleSlot(&out, role)
	if err != nil {
		return m, err
	}

	if fieldName == "" {
		*slot = ""
		return out, nil
	}
	if _, ok := dataset.FindField(fields, fieldName); !ok {
		return m, fmt.Errorf("%w: %q for role %s", core.ErrUnknownField, fieldName, role)
	}
	*slot = fieldName
	return out, nil
}

func toggleMeasure(out chart.FieldMapping, fields []dataset.FieldDescriptor, fieldName string) (chart.FieldMapping, error) {
	if fieldName == "" {
		return out, fmt.Errorf("%w: measure toggle requires a field name", core.ErrUnknownField)
	}

	if out.HasMeasure(fieldName) {
		// Toggle off, preserving the relative order of the remainder.
		kept := out.Measures[:0]
		for _, name := range out.Measures {
			if name != fieldName {
				kept = append(kept, name)
			}
		}
		out.Measures = kept
		return out, nil
	}

	field, ok := dataset.FindField(fields, fieldName)
	if !ok {
		return out, fmt.Errorf("%w: %q for role %s", core.ErrUnknownField, fieldName, chart.RoleMeasures)
	}
	if !field.IsNumeric() {
		return out, fmt.Errorf("%w: %q is %s", core.ErrFieldNotNumeric, fieldName, field.DataType)
	}
	out.Measures = append(out.Measures, fieldName)
	return out, nil
}

func roleSlot(m *chart.FieldMapping, role chart.Role) (*string, error) {
	switch role {
	case chart.RoleDimension:
		return &m.Dimension, nil
	case chart.RoleColor:
		return &m.ColorField, nil
	case chart.RoleSize:
		return &m.SizeField, nil
	case chart.RoleSeries:
		return &m.SeriesField, nil
	case chart.RoleGeo:
		return &m.GeoField, nil
	case chart.RoleTime:
		return &m.TimeField, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownRole, role)
	}
}

// Validate checks that every bound field in the mapping still resolves
// against the descriptor set and that measures are numeric.
func Validate(m chart.FieldMapping, fields []dataset.FieldDescriptor) error {
	for _, name := range m.ReferencedFields() {
		f, ok := dataset.FindField(fields, name)
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrUnknownField, name)
		}
		if m.HasMeasure(name) && !f.IsNumeric() {
			return fmt.Errorf("%w: %q is %s", core.ErrFieldNotNumeric, name, f.DataType)
		}
	}
	return nil
}
