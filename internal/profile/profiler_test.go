package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"chartadvisor/domain/core"
	"chartadvisor/domain/dataset"
)

func TestTypeInference(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		expected dataset.DataType
	}{
		{
			name:     "numeric strings classify as number",
			values:   []any{"100", "200", "150"},
			expected: dataset.TypeNumber,
		},
		{
			name:     "native numbers classify as number",
			values:   []any{1, 2.5, int64(3)},
			expected: dataset.TypeNumber,
		},
		{
			name:     "iso dates classify as date",
			values:   []any{"2024-01-01", "2024-02-15", "2024-03-31"},
			expected: dataset.TypeDate,
		},
		{
			name:     "boolean literals classify as boolean",
			values:   []any{"true", "false", true},
			expected: dataset.TypeBoolean,
		},
		{
			name:     "plain text classifies as string",
			values:   []any{"North", "South", "East"},
			expected: dataset.TypeString,
		},
		{
			name:     "mixed content defaults to string",
			values:   []any{"100", "North", "2024-01-01"},
			expected: dataset.TypeString,
		},
		{
			name:     "all nulls default to string",
			values:   nil,
			expected: dataset.TypeString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferType(tt.values); got != tt.expected {
				t.Errorf("inferType(%v) = %s, want %s", tt.values, got, tt.expected)
			}
		})
	}
}

func TestProfileNumericStats(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	rows := []dataset.Record{
		{"value": "100"},
		{"value": "200"},
		{"value": "150"},
	}

	fields, err := extractor.ProfileRecords(context.Background(), rows)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	f := fields[0]
	if f.DataType != dataset.TypeNumber {
		t.Fatalf("expected number type, got %s", f.DataType)
	}
	if f.NumericStats == nil {
		t.Fatal("expected numeric stats to be present")
	}

	s := f.NumericStats
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"min", s.Min, 100},
		{"max", s.Max, 200},
		{"mean", s.Mean, 150},
		{"median", s.Median, 150},
		{"sum", s.Sum, 450},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestProfileEndToEnd(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	rows := []dataset.Record{
		{"category": "A", "value": 100},
		{"category": "B", "value": 200},
		{"category": "C", "value": 150},
	}

	fields, err := extractor.Profile(context.Background(), dataset.Table{
		Columns: []string{"category", "value"},
		Rows:    rows,
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	cat := fields[0]
	if cat.Name != "category" || cat.DataType != dataset.TypeString {
		t.Errorf("category field = %+v, want string type", cat)
	}
	if cat.UniqueCount != 3 {
		t.Errorf("category unique count = %d, want 3", cat.UniqueCount)
	}
	if cat.OrdinalIndex != 0 || fields[1].OrdinalIndex != 1 {
		t.Errorf("ordinal indexes not contiguous: %d, %d", cat.OrdinalIndex, fields[1].OrdinalIndex)
	}
	if cat.NumericStats != nil {
		t.Error("non-numeric field must not carry numeric stats")
	}

	val := fields[1]
	if val.DataType != dataset.TypeNumber || val.NumericStats == nil {
		t.Fatalf("value field = %+v, want numeric with stats", val)
	}
	if val.NumericStats.Sum != 450 {
		t.Errorf("value sum = %v, want 450", val.NumericStats.Sum)
	}
}

func TestProfileEmptyDataset(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	_, err := extractor.ProfileRecords(context.Background(), nil)
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestProfileInconsistentSchema(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	_, err := extractor.ProfileRecords(context.Background(), []dataset.Record{{}, {}})
	if !errors.Is(err, core.ErrInconsistentSchema) {
		t.Errorf("expected ErrInconsistentSchema, got %v", err)
	}
}

func TestProfileNullableAndSampling(t *testing.T) {
	extractor := NewExtractor(Config{SampleSize: 2, MaxSampleValues: 2})
	rows := []dataset.Record{
		{"a": "x"},
		{"a": nil, "b": "1"},
		{"a": "beyond-sample", "b": "2"},
	}

	fields, err := extractor.Profile(context.Background(), dataset.Table{
		Columns: []string{"a", "b"},
		Rows:    rows,
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	a := fields[0]
	if !a.Nullable {
		t.Error("field a should be nullable, second row is null")
	}
	if a.UniqueCount != 1 {
		t.Errorf("field a unique count = %d, want 1 (third row beyond sample)", a.UniqueCount)
	}
	b := fields[1]
	if !b.Nullable {
		t.Error("field b should be nullable, first row has no value")
	}
	if len(a.SampleValues) > 2 {
		t.Errorf("sample values exceed cap: %v", a.SampleValues)
	}
}

func TestProfileDeterministicOrder(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	rows := make([]dataset.Record, 0, 50)
	for i := 0; i < 50; i++ {
		rows = append(rows, dataset.Record{
			"delta": i, "alpha": fmt.Sprintf("v%d", i), "mid": i * 2,
		})
	}

	first, err := extractor.ProfileRecords(context.Background(), rows)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := extractor.ProfileRecords(context.Background(), rows)
		if err != nil {
			t.Fatalf("Profile failed: %v", err)
		}
		for j := range first {
			if again[j].Name != first[j].Name || again[j].OrdinalIndex != first[j].OrdinalIndex {
				t.Fatalf("run %d: field order changed: %v vs %v", i, again[j], first[j])
			}
		}
	}
}

func TestCorrelations(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	rows := make([]dataset.Record, 0, 10)
	for i := 1; i <= 10; i++ {
		rows = append(rows, dataset.Record{"x": i, "y": i * 2, "label": "row"})
	}
	tbl := dataset.Table{Columns: []string{"x", "y", "label"}, Rows: rows}

	fields, err := extractor.Profile(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	corrs := Correlations(tbl, fields)
	if len(corrs) != 1 {
		t.Fatalf("expected 1 correlation pair, got %d", len(corrs))
	}
	c := corrs[0]
	if c.FieldX != "x" || c.FieldY != "y" || c.N != 10 {
		t.Errorf("unexpected pair: %+v", c)
	}
	if math.Abs(c.R-1.0) > 1e-9 {
		t.Errorf("perfectly linear data should have r = 1, got %v", c.R)
	}
}
