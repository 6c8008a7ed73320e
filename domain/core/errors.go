package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrChartNotFound = fmt.Errorf("%w: chart", ErrNotFound)
	ErrFieldNotFound = fmt.Errorf("%w: field", ErrNotFound)

	// Dataset errors
	ErrEmptyDataset       = errors.New("dataset contains no rows")
	ErrInconsistentSchema = errors.New("records carry no fields in common")

	// Mapping errors
	ErrUnknownField    = errors.New("field not present in dataset")
	ErrFieldNotNumeric = errors.New("field is not numeric")
	ErrUnknownRole     = errors.New("unknown mapping role")
	ErrUnknownChart    = errors.New("unknown chart type")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewRoleError(role string, reason string) error {
	return fmt.Errorf("role %s rejected: %s", role, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrInconsistentSchema)
}

func IsMappingError(err error) bool {
	return errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrFieldNotNumeric) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrUnknownChart)
}
