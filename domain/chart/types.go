package chart

import (
	"chartadvisor/domain/core"
)

// Type enumerates the chart kinds the advisor can suggest and persist.
type Type string

const (
	TypeBar     Type = "bar"
	TypeLine    Type = "line"
	TypeArea    Type = "area"
	TypePie     Type = "pie"
	TypeScatter Type = "scatter"
	TypeRadar   Type = "radar"
	TypeHeatmap Type = "heatmap"
)

// Meta carries presentation metadata for a chart type.
type Meta struct {
	Label       string   `json:"label"`
	SuitableFor []string `json:"suitable_for"`
}

// metaByType is the exhaustive lookup table for the closed Type set.
var metaByType = map[Type]Meta{
	TypeBar:     {Label: "Bar Chart", SuitableFor: []string{"category comparison", "rankings"}},
	TypeLine:    {Label: "Line Chart", SuitableFor: []string{"trends over time", "time series"}},
	TypeArea:    {Label: "Area Chart", SuitableFor: []string{"cumulative trends", "time series"}},
	TypePie:     {Label: "Pie Chart", SuitableFor: []string{"part-to-whole", "proportions"}},
	TypeScatter: {Label: "Scatter Plot", SuitableFor: []string{"correlation", "distribution"}},
	TypeRadar:   {Label: "Radar Chart", SuitableFor: []string{"multi-metric comparison", "profiles"}},
	TypeHeatmap: {Label: "Heatmap", SuitableFor: []string{"cross-category density", "matrices"}},
}

// fallbackMeta is returned for values outside the closed Type set.
var fallbackMeta = Meta{Label: "Chart", SuitableFor: []string{"general"}}

// Meta returns the metadata for the type, or a documented fallback entry
// for unknown values.
func (t Type) Meta() Meta {
	if m, ok := metaByType[t]; ok {
		return m
	}
	return fallbackMeta
}

// Valid reports whether t belongs to the closed Type set.
func (t Type) Valid() bool {
	_, ok := metaByType[t]
	return ok
}

// AllTypes returns the closed Type set in a stable order.
func AllTypes() []Type {
	return []Type{TypeBar, TypeLine, TypeArea, TypePie, TypeScatter, TypeRadar, TypeHeatmap}
}

// Recommendation is one suggested chart type with its ranking signal.
// Confidence is a heuristic 0-100 score, not a calibrated probability.
type Recommendation struct {
	ID          string   `json:"id"`
	ChartType   Type     `json:"chart_type"`
	Confidence  int      `json:"confidence"`
	Reason      string   `json:"reason"`
	SuitableFor []string `json:"suitable_for"`
}

// StyleConfig holds opaque presentation settings for a stored chart.
type StyleConfig map[string]any

// StoredChart is a persisted, named chart configuration.
type StoredChart struct {
	ID               core.ChartID      `json:"id"`
	Name             string            `json:"name"`
	ChartType        Type              `json:"chart_type"`
	DataSourceID     core.DataSourceID `json:"data_source_id"`
	FieldMapping     FieldMapping      `json:"field_mapping"`
	StyleConfig      StyleConfig       `json:"style_config,omitempty"`
	SerializedOption string            `json:"serialized_option,omitempty"`
	Thumbnail        string            `json:"thumbnail,omitempty"`
	CreatedAt        core.Timestamp    `json:"created_at"`
	UpdatedAt        core.Timestamp    `json:"updated_at"`
}

// Patch carries the updatable fields of a stored chart. Nil members are
// left untouched by an update.
type Patch struct {
	Name             *string       `json:"name,omitempty"`
	ChartType        *Type         `json:"chart_type,omitempty"`
	FieldMapping     *FieldMapping `json:"field_mapping,omitempty"`
	StyleConfig      *StyleConfig  `json:"style_config,omitempty"`
	SerializedOption *string       `json:"serialized_option,omitempty"`
	Thumbnail        *string       `json:"thumbnail,omitempty"`
}
