package dataset

import (
	"sort"
)

// Record is one flat row of a dataset, keyed by field name.
// A missing key is treated as a null value for that field.
type Record map[string]any

// DataType is the inferred type of a field. Inference is performed by the
// profiler; records never declare their types.
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeBoolean DataType = "boolean"
	TypeDate    DataType = "date"
)

// NumericStats holds summary statistics for a numeric field, computed over
// all non-null values in the sampled rows.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Sum    float64 `json:"sum"`
	StdDev float64 `json:"std_dev"`
}

// FieldDescriptor describes one column of a dataset.
type FieldDescriptor struct {
	Name         string        `json:"name"`
	DataType     DataType      `json:"data_type"`
	OrdinalIndex int           `json:"ordinal_index"`
	Nullable     bool          `json:"nullable"`
	UniqueCount  int           `json:"unique_count"`
	SampleValues []string      `json:"sample_values"`
	NumericStats *NumericStats `json:"numeric_stats,omitempty"`
}

// IsNumeric reports whether the field carries numeric values.
func (f FieldDescriptor) IsNumeric() bool { return f.DataType == TypeNumber }

// IsCategorical reports whether the field is treated as a category axis.
func (f FieldDescriptor) IsCategorical() bool { return f.DataType == TypeString }

// IsDate reports whether the field parses as calendar dates.
func (f FieldDescriptor) IsDate() bool { return f.DataType == TypeDate }

// FindField returns the descriptor with the given name, if present.
func FindField(fields []FieldDescriptor, name string) (FieldDescriptor, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Table is a fully materialized dataset with a stable column order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// NewTable derives a table from raw records. Column order follows first
// appearance across rows; keys first seen in the same record are ordered
// alphabetically so the result is deterministic despite map iteration.
func NewTable(rows []Record) Table {
	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		fresh := make([]string, 0, len(row))
		for k := range row {
			if !seen[k] {
				seen[k] = true
				fresh = append(fresh, k)
			}
		}
		sort.Strings(fresh)
		columns = append(columns, fresh...)
	}
	return Table{Columns: columns, Rows: rows}
}

// Value returns the cell for a column in a row. The second return is false
// when the cell is absent or null.
func (t Table) Value(row Record, column string) (any, bool) {
	v, ok := row[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
