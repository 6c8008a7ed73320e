package api

import (
	"chartadvisor/domain/chart"
	"chartadvisor/domain/dataset"
	"chartadvisor/internal/profile"
)

// analyzeRequest carries raw rows for profiling. Columns is optional; when
// omitted a deterministic order is derived from the records.
type analyzeRequest struct {
	Columns []string         `json:"columns"`
	Rows    []dataset.Record `json:"rows" binding:"required"`
}

type analyzeResponse struct {
	TotalRows    int                        `json:"total_rows"`
	Fields       []dataset.FieldDescriptor  `json:"fields"`
	Correlations []profile.FieldCorrelation `json:"correlations,omitempty"`
}

// recommendRequest accepts either pre-profiled fields or raw rows.
type recommendRequest struct {
	Fields     []dataset.FieldDescriptor `json:"fields"`
	Columns    []string                  `json:"columns"`
	Rows       []dataset.Record          `json:"rows"`
	TotalRows  int                       `json:"total_rows"`
	MaxResults int                       `json:"max_results"`
}

type recommendResponse struct {
	Recommendations []chart.Recommendation `json:"recommendations"`
}

type composeRequest struct {
	ChartType chart.Type                `json:"chart_type" binding:"required"`
	Fields    []dataset.FieldDescriptor `json:"fields"`
	Previous  *chart.FieldMapping       `json:"previous"`
}

type roleChangeRequest struct {
	Mapping chart.FieldMapping        `json:"mapping"`
	Fields  []dataset.FieldDescriptor `json:"fields" binding:"required"`
	Role    chart.Role                `json:"role" binding:"required"`
	Field   string                    `json:"field"`
}

type generateRequest struct {
	ChartType chart.Type         `json:"chart_type" binding:"required"`
	Title     string             `json:"title"`
	Mapping   chart.FieldMapping `json:"mapping"`
	Columns   []string           `json:"columns"`
	Rows      []dataset.Record   `json:"rows" binding:"required"`
}

type generateResponse struct {
	Option string `json:"option"`
}

type reportRequest struct {
	Title   string           `json:"title"`
	Columns []string         `json:"columns"`
	Rows    []dataset.Record `json:"rows" binding:"required"`
}

func (r analyzeRequest) table() dataset.Table {
	return tableFrom(r.Columns, r.Rows)
}

func tableFrom(columns []string, rows []dataset.Record) dataset.Table {
	if len(columns) > 0 {
		return dataset.Table{Columns: columns, Rows: rows}
	}
	return dataset.NewTable(rows)
}
