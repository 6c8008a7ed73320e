package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ChartID      ID
	DataSourceID ID
)

// NewChartID generates a fresh chart identifier
func NewChartID() ChartID {
	return ChartID(NewID())
}

// String conversions for domain IDs
func (id ChartID) String() string      { return ID(id).String() }
func (id DataSourceID) String() string { return ID(id).String() }

// IsEmpty checks for the zero value
func (id ChartID) IsEmpty() bool      { return id == "" }
func (id DataSourceID) IsEmpty() bool { return id == "" }

// ParseChartID parses a string into ChartID
func ParseChartID(s string) (ChartID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("chart ID cannot be empty")
	}
	return ChartID(s), nil
}

// ParseDataSourceID parses a string into DataSourceID
func ParseDataSourceID(s string) (DataSourceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("data source ID cannot be empty")
	}
	return DataSourceID(s), nil
}
