package recommend

import (
	"fmt"
	"strings"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/dataset"
)

// Empirical confidence constants and gating thresholds. These are tuned
// ranking signals, not calibrated probabilities.
const (
	confBarNiceCardinality = 85
	confBarWideCardinality = 70
	confLine               = 90
	confArea               = 75
	confPie                = 80
	confScatter            = 75
	confRadar              = 65
	confHeatmap            = 60

	// A bar axis reads best with a moderate number of categories.
	barCardinalityMin = 3
	barCardinalityMax = 20

	// Too many pie slices defeats the purpose.
	pieCardinalityMin = 2
	pieCardinalityMax = 8

	// Radar wants a handful of comparable metrics.
	radarMeasuresMin = 3
	radarMeasuresMax = 8
)

// Context classifies the field descriptors into the buckets the rules
// reason about. Buckets preserve ordinal order.
type Context struct {
	Fields      []dataset.FieldDescriptor
	TotalRows   int
	Numeric     []dataset.FieldDescriptor
	Categorical []dataset.FieldDescriptor
	Date        []dataset.FieldDescriptor
}

// NewContext buckets the fields by inferred type.
func NewContext(fields []dataset.FieldDescriptor, totalRows int) *Context {
	rc := &Context{Fields: fields, TotalRows: totalRows}
	for _, f := range fields {
		switch {
		case f.IsNumeric():
			rc.Numeric = append(rc.Numeric, f)
		case f.IsCategorical():
			rc.Categorical = append(rc.Categorical, f)
		case f.IsDate():
			rc.Date = append(rc.Date, f)
		}
	}
	return rc
}

// Rule is one independent chart-suggestion heuristic. Rules are evaluated
// uniformly; several may fire for the same input.
type Rule interface {
	ChartType() chart.Type
	Applies(rc *Context) bool
	Score(rc *Context) (confidence int, reason string)
}

func fieldNames(fields []dataset.FieldDescriptor, max int) string {
	names := make([]string, 0, max)
	for _, f := range fields {
		names = append(names, f.Name)
		if len(names) == max {
			break
		}
	}
	return strings.Join(names, ", ")
}

// barRule fires when a categorical axis can carry numeric values.
type barRule struct{}

func (barRule) ChartType() chart.Type { return chart.TypeBar }

func (barRule) Applies(rc *Context) bool {
	return len(rc.Categorical) >= 1 && len(rc.Numeric) >= 1
}

func (barRule) Score(rc *Context) (int, string) {
	cat := rc.Categorical[0]
	conf := confBarWideCardinality
	if cat.UniqueCount >= barCardinalityMin && cat.UniqueCount <= barCardinalityMax {
		conf = confBarNiceCardinality
	}
	reason := fmt.Sprintf("%q offers %d categories to compare %s across",
		cat.Name, cat.UniqueCount, fieldNames(rc.Numeric, 2))
	return conf, reason
}

// lineRule fires for a time series: a date axis plus numeric values.
type lineRule struct{}

func (lineRule) ChartType() chart.Type { return chart.TypeLine }

func (lineRule) Applies(rc *Context) bool {
	return len(rc.Date) >= 1 && len(rc.Numeric) >= 1
}

func (lineRule) Score(rc *Context) (int, string) {
	reason := fmt.Sprintf("%q is a time axis for tracking %s",
		rc.Date[0].Name, fieldNames(rc.Numeric, 2))
	return confLine, reason
}

// areaRule is the secondary time-series suggestion, same precondition as line.
type areaRule struct{}

func (areaRule) ChartType() chart.Type { return chart.TypeArea }

func (areaRule) Applies(rc *Context) bool {
	return len(rc.Date) >= 1 && len(rc.Numeric) >= 1
}

func (areaRule) Score(rc *Context) (int, string) {
	reason := fmt.Sprintf("%q over %q can emphasize cumulative change",
		rc.Numeric[0].Name, rc.Date[0].Name)
	return confArea, reason
}

// pieRule fires for a low-cardinality part-to-whole breakdown.
type pieRule struct{}

func (pieRule) ChartType() chart.Type { return chart.TypePie }

func (pieRule) Applies(rc *Context) bool {
	if len(rc.Categorical) < 1 || len(rc.Numeric) < 1 {
		return false
	}
	card := rc.Categorical[0].UniqueCount
	return card >= pieCardinalityMin && card <= pieCardinalityMax
}

func (pieRule) Score(rc *Context) (int, string) {
	cat := rc.Categorical[0]
	reason := fmt.Sprintf("%q splits %q into %d shares of a whole",
		cat.Name, rc.Numeric[0].Name, cat.UniqueCount)
	return confPie, reason
}

// scatterRule fires when two numeric fields can be plotted against each other.
type scatterRule struct{}

func (scatterRule) ChartType() chart.Type { return chart.TypeScatter }

func (scatterRule) Applies(rc *Context) bool {
	return len(rc.Numeric) >= 2
}

func (scatterRule) Score(rc *Context) (int, string) {
	reason := fmt.Sprintf("%q against %q may reveal a relationship",
		rc.Numeric[0].Name, rc.Numeric[1].Name)
	return confScatter, reason
}

// radarRule fires for a handful of numeric metrics worth comparing as a profile.
type radarRule struct{}

func (radarRule) ChartType() chart.Type { return chart.TypeRadar }

func (radarRule) Applies(rc *Context) bool {
	n := len(rc.Numeric)
	return n >= radarMeasuresMin && n <= radarMeasuresMax
}

func (radarRule) Score(rc *Context) (int, string) {
	reason := fmt.Sprintf("%d numeric metrics (%s) form a comparable profile",
		len(rc.Numeric), fieldNames(rc.Numeric, 3))
	return confRadar, reason
}

// heatmapRule fires when two category axes cross over a numeric value.
type heatmapRule struct{}

func (heatmapRule) ChartType() chart.Type { return chart.TypeHeatmap }

func (heatmapRule) Applies(rc *Context) bool {
	return len(rc.Categorical) >= 2 && len(rc.Numeric) >= 1
}

func (heatmapRule) Score(rc *Context) (int, string) {
	reason := fmt.Sprintf("%q crossed with %q maps %q as intensity",
		rc.Categorical[0].Name, rc.Categorical[1].Name, rc.Numeric[0].Name)
	return confHeatmap, reason
}
