package recommend

import (
	"sort"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/dataset"
)

// DefaultMaxResults bounds the suggestion list when the caller passes no limit.
const DefaultMaxResults = 5

// Engine evaluates an ordered registry of chart-suggestion rules.
// Adding a chart heuristic is a pure-addition change to the registry.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the full rule registry
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			barRule{},
			lineRule{},
			areaRule{},
			pieRule{},
			scatterRule{},
			radarRule{},
			heatmapRule{},
		},
	}
}

// Recommend ranks candidate chart types for the field descriptors. The
// result is sorted non-increasing by confidence, stably so equal scores
// keep registry order, and truncated to maxResults. A zero or negative
// maxResults falls back to DefaultMaxResults. Pure and deterministic; an
// input that fires no rule yields an empty slice.
func (e *Engine) Recommend(fields []dataset.FieldDescriptor, totalRows, maxResults int) []chart.Recommendation {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	rc := NewContext(fields, totalRows)

	recs := make([]chart.Recommendation, 0, len(e.rules))
	for _, rule := range e.rules {
		if !rule.Applies(rc) {
			continue
		}
		confidence, reason := rule.Score(rc)
		t := rule.ChartType()
		recs = append(recs, chart.Recommendation{
			ID:          string(t),
			ChartType:   t,
			Confidence:  confidence,
			Reason:      reason,
			SuitableFor: t.Meta().SuitableFor,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})

	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs
}
