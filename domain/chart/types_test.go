package chart

import "testing"

func TestMetaCoversAllTypes(t *testing.T) {
	for _, typ := range AllTypes() {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
		m := typ.Meta()
		if m.Label == "" || len(m.SuitableFor) == 0 {
			t.Errorf("%s has incomplete metadata: %+v", typ, m)
		}
	}
}

func TestMetaFallbackForUnknownType(t *testing.T) {
	typ := Type("sunburst")
	if typ.Valid() {
		t.Error("sunburst should not be in the closed set")
	}
	m := typ.Meta()
	if m.Label != "Chart" {
		t.Errorf("unknown type should get the fallback entry, got %+v", m)
	}
}

func TestNewFieldMappingMeasuresNonNil(t *testing.T) {
	m := NewFieldMapping()
	if m.Measures == nil {
		t.Error("Measures must serialize as [] rather than null")
	}
}

func TestFieldMappingClone(t *testing.T) {
	orig := FieldMapping{Dimension: "region", Measures: []string{"revenue", "cost"}}
	clone := orig.Clone()

	clone.Dimension = "quarter"
	clone.Measures[0] = "profit"

	if orig.Dimension != "region" || orig.Measures[0] != "revenue" {
		t.Errorf("mutating the clone changed the original: %+v", orig)
	}
}

func TestReferencedFields(t *testing.T) {
	m := FieldMapping{
		Dimension: "region",
		Measures:  []string{"revenue"},
		TimeField: "date",
	}
	refs := m.ReferencedFields()
	want := map[string]bool{"region": true, "revenue": true, "date": true}
	if len(refs) != len(want) {
		t.Fatalf("refs = %v", refs)
	}
	for _, f := range refs {
		if !want[f] {
			t.Errorf("unexpected field %q in %v", f, refs)
		}
	}
}
