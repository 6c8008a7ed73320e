package ports

import (
	"context"

	"chartadvisor/domain/dataset"
)

// Profiler analyzes a materialized dataset into per-column field descriptors.
type Profiler interface {
	Profile(ctx context.Context, tbl dataset.Table) ([]dataset.FieldDescriptor, error)
}
