package ports

import (
	"chartadvisor/domain/chart"
	"chartadvisor/domain/dataset"
)

// Recommender ranks candidate chart types for a set of field descriptors.
// Implementations must be pure: the same input yields the same ordered output.
type Recommender interface {
	Recommend(fields []dataset.FieldDescriptor, totalRows, maxResults int) []chart.Recommendation
}
