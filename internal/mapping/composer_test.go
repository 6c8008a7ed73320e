package mapping

import (
	"errors"
	"reflect"
	"testing"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	"chartadvisor/domain/dataset"
)

var testFields = []dataset.FieldDescriptor{
	{Name: "category", DataType: dataset.TypeString, OrdinalIndex: 0},
	{Name: "revenue", DataType: dataset.TypeNumber, OrdinalIndex: 1},
	{Name: "cost", DataType: dataset.TypeNumber, OrdinalIndex: 2},
	{Name: "day", DataType: dataset.TypeDate, OrdinalIndex: 3},
}

func TestComposeCleanContract(t *testing.T) {
	prev := chart.FieldMapping{
		Dimension: "category",
		Measures:  []string{"revenue", "cost"},
		TimeField: "day",
	}

	m := Compose(chart.TypePie, testFields, &prev)

	if m.Dimension != "" || m.TimeField != "" {
		t.Errorf("compose must clear optional roles, got %+v", m)
	}
	if m.Measures == nil || len(m.Measures) != 0 {
		t.Errorf("compose must reset measures to empty, got %v", m.Measures)
	}
}

func TestApplyRoleChangeSingleRoles(t *testing.T) {
	m := chart.NewFieldMapping()

	for _, role := range []chart.Role{chart.RoleDimension, chart.RoleColor, chart.RoleSize, chart.RoleSeries, chart.RoleGeo, chart.RoleTime} {
		t.Run(string(role), func(t *testing.T) {
			// Any existing field binds, regardless of type.
			bound, err := ApplyRoleChange(m, testFields, role, "revenue")
			if err != nil {
				t.Fatalf("binding %s failed: %v", role, err)
			}
			// Clearing always succeeds.
			cleared, err := ApplyRoleChange(bound, testFields, role, "")
			if err != nil {
				t.Fatalf("clearing %s failed: %v", role, err)
			}
			if !reflect.DeepEqual(cleared, m) {
				t.Errorf("clear did not restore empty mapping: %+v", cleared)
			}
		})
	}
}

func TestApplyRoleChangeUnknownField(t *testing.T) {
	m := chart.NewFieldMapping()
	_, err := ApplyRoleChange(m, testFields, chart.RoleDimension, "missing")
	if !errors.Is(err, core.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestApplyRoleChangeUnknownRole(t *testing.T) {
	m := chart.NewFieldMapping()
	_, err := ApplyRoleChange(m, testFields, chart.Role("bogus"), "revenue")
	if !errors.Is(err, core.ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestMeasureToggle(t *testing.T) {
	m := chart.NewFieldMapping()

	m1, err := ApplyRoleChange(m, testFields, chart.RoleMeasures, "revenue")
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	m2, err := ApplyRoleChange(m1, testFields, chart.RoleMeasures, "cost")
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !reflect.DeepEqual(m2.Measures, []string{"revenue", "cost"}) {
		t.Fatalf("measures = %v, want [revenue cost]", m2.Measures)
	}

	// Toggle the first off; the rest keep their relative order.
	m3, err := ApplyRoleChange(m2, testFields, chart.RoleMeasures, "revenue")
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if !reflect.DeepEqual(m3.Measures, []string{"cost"}) {
		t.Errorf("measures after toggle off = %v, want [cost]", m3.Measures)
	}

	// The inputs were never mutated.
	if !reflect.DeepEqual(m2.Measures, []string{"revenue", "cost"}) {
		t.Errorf("input mapping mutated: %v", m2.Measures)
	}
}

func TestMeasureTypeEnforcement(t *testing.T) {
	m := chart.NewFieldMapping()
	m, err := ApplyRoleChange(m, testFields, chart.RoleMeasures, "revenue")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	before := m.Clone()

	_, err = ApplyRoleChange(m, testFields, chart.RoleMeasures, "category")
	if !errors.Is(err, core.ErrFieldNotNumeric) {
		t.Fatalf("expected ErrFieldNotNumeric, got %v", err)
	}
	if !reflect.DeepEqual(m, before) {
		t.Errorf("failed role change must leave the mapping unchanged: %+v", m)
	}

	_, err = ApplyRoleChange(m, testFields, chart.RoleMeasures, "day")
	if !errors.Is(err, core.ErrFieldNotNumeric) {
		t.Errorf("date fields are not measures, got %v", err)
	}
}

func TestMeasureUnknownField(t *testing.T) {
	m := chart.NewFieldMapping()
	if _, err := ApplyRoleChange(m, testFields, chart.RoleMeasures, "missing"); !errors.Is(err, core.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err := ApplyRoleChange(m, testFields, chart.RoleMeasures, ""); !errors.Is(err, core.ErrUnknownField) {
		t.Errorf("empty measure name must be rejected, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	ok := chart.FieldMapping{Dimension: "category", Measures: []string{"revenue"}}
	if err := Validate(ok, testFields); err != nil {
		t.Errorf("valid mapping rejected: %v", err)
	}

	stale := chart.FieldMapping{Dimension: "gone", Measures: []string{"revenue"}}
	if err := Validate(stale, testFields); !errors.Is(err, core.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField for stale dimension, got %v", err)
	}

	wrongType := chart.FieldMapping{Measures: []string{"category"}}
	if err := Validate(wrongType, testFields); !errors.Is(err, core.ErrFieldNotNumeric) {
		t.Errorf("expected ErrFieldNotNumeric, got %v", err)
	}
}
