package ports

import (
	"context"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
)

// ChartStore persists named chart configurations.
//
// Every operation is fail-soft: implementations signal failure with a false
// return or an empty result rather than an error, so analysis and mapping
// flows are never blocked by a misbehaving store. Implementations log the
// underlying cause for diagnostics.
type ChartStore interface {
	List(ctx context.Context) []chart.StoredChart
	Add(ctx context.Context, c *chart.StoredChart) bool
	Remove(ctx context.Context, id core.ChartID) bool
	Update(ctx context.Context, id core.ChartID, patch chart.Patch) bool
	Clear(ctx context.Context) bool
	GetByID(ctx context.Context, id core.ChartID) (*chart.StoredChart, bool)
	GetByDataSource(ctx context.Context, dataSourceID core.DataSourceID) []chart.StoredChart
}
