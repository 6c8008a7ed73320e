package ports

import (
	"chartadvisor/domain/dataset"
)

// DatasetReader parses an external source (uploaded file, export) into a
// materialized table ready for profiling.
type DatasetReader interface {
	Read() (dataset.Table, error)
}
