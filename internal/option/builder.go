package option

import (
	"encoding/json"
	"fmt"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	"chartadvisor/domain/dataset"
	"chartadvisor/internal/mapping"
)

// Spec is the chart-library configuration under construction. It is an
// opaque JSON document to everything but the renderer.
type Spec map[string]any

// Builder composes the resolved chart-library configuration from a chart
// type, a field mapping, and the materialized rows.
type Builder struct {
	chartType chart.Type
	spec      Spec
}

// NewBuilder starts a configuration for the given chart type
func NewBuilder(chartType chart.Type, title string) *Builder {
	b := &Builder{
		chartType: chartType,
		spec: Spec{
			"version": "v1",
			"type":    string(chartType),
		},
	}
	if title != "" {
		b.spec["title"] = Spec{"text": title}
	}
	return b
}

// WithStyle merges opaque presentation settings into the configuration.
func (b *Builder) WithStyle(style chart.StyleConfig) *Builder {
	for k, v := range style {
		b.spec[k] = v
	}
	return b
}

// WithData resolves the mapping against the table and writes the axis and
// series sections. The mapping is validated first so a stale mapping never
// produces a half-filled configuration.
func (b *Builder) WithData(m chart.FieldMapping, fields []dataset.FieldDescriptor, tbl dataset.Table) (*Builder, error) {
	if err := mapping.Validate(m, fields); err != nil {
		return nil, err
	}

	switch b.chartType {
	case chart.TypePie:
		return b.buildPie(m, tbl)
	case chart.TypeScatter:
		return b.buildScatter(m, tbl)
	default:
		return b.buildAxes(m, tbl)
	}
}

// Build serializes the configuration to its opaque string form.
func (b *Builder) Build() (string, error) {
	data, err := json.Marshal(b.spec)
	if err != nil {
		return "", fmt.Errorf("serialize chart option: %w", err)
	}
	return string(data), nil
}

// buildAxes covers the category-axis family: bar, line, area, radar, heatmap.
func (b *Builder) buildAxes(m chart.FieldMapping, tbl dataset.Table) (*Builder, error) {
	axis := m.Dimension
	if axis == "" {
		axis = m.TimeField
	}
	if axis == "" {
		return nil, fmt.Errorf("%w: %s needs a dimension or time field", core.ErrUnknownField, b.chartType)
	}
	if len(m.Measures) == 0 {
		return nil, fmt.Errorf("%w: %s needs at least one measure", core.ErrFieldNotNumeric, b.chartType)
	}

	categories := columnStrings(tbl, axis)
	series := make([]Spec, 0, len(m.Measures))
	for _, measure := range m.Measures {
		series = append(series, Spec{
			"name": measure,
			"type": string(b.chartType),
			"data": columnNumbers(tbl, measure),
		})
	}

	b.spec["xAxis"] = Spec{"type": "category", "data": categories}
	b.spec["yAxis"] = Spec{"type": "value"}
	b.spec["series"] = series
	return b, nil
}

func (b *Builder) buildPie(m chart.FieldMapping, tbl dataset.Table) (*Builder, error) {
	if m.Dimension == "" || len(m.Measures) == 0 {
		return nil, fmt.Errorf("%w: pie needs a dimension and a measure", core.ErrUnknownField)
	}

	names := columnStrings(tbl, m.Dimension)
	values := columnNumbers(tbl, m.Measures[0])
	data := make([]Spec, 0, len(names))
	for i := range names {
		if i >= len(values) {
			break
		}
		data = append(data, Spec{"name": names[i], "value": values[i]})
	}

	b.spec["series"] = []Spec{{
		"name": m.Measures[0],
		"type": "pie",
		"data": data,
	}}
	return b, nil
}

func (b *Builder) buildScatter(m chart.FieldMapping, tbl dataset.Table) (*Builder, error) {
	if len(m.Measures) < 2 {
		return nil, fmt.Errorf("%w: scatter needs two measures", core.ErrFieldNotNumeric)
	}

	xs := columnNumbers(tbl, m.Measures[0])
	ys := columnNumbers(tbl, m.Measures[1])
	points := make([][2]float64, 0, len(xs))
	for i := range xs {
		if i >= len(ys) {
			break
		}
		points = append(points, [2]float64{xs[i], ys[i]})
	}

	b.spec["xAxis"] = Spec{"type": "value", "name": m.Measures[0]}
	b.spec["yAxis"] = Spec{"type": "value", "name": m.Measures[1]}
	b.spec["series"] = []Spec{{
		"type": "scatter",
		"data": points,
	}}
	return b, nil
}

// Serialize is the one-call path from {chartType, mapping, fields, rows} to
// the opaque configuration string stored on a chart instance.
func Serialize(chartType chart.Type, title string, m chart.FieldMapping, fields []dataset.FieldDescriptor, tbl dataset.Table) (string, error) {
	b, err := NewBuilder(chartType, title).WithData(m, fields, tbl)
	if err != nil {
		return "", err
	}
	return b.Build()
}
