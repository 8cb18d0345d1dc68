package terrain

import "github.com/pkg/errors"

var (
	// ErrConfig reports an invalid catalog or grid configuration. It is fatal
	// to a generation run.
	ErrConfig = errors.New("terrain: invalid configuration")

	// ErrUnknownCategory reports a lookup of a category absent from the catalog.
	ErrUnknownCategory = errors.New("terrain: unknown category")

	// ErrUnknownCatalog reports a registry lookup of an unregistered catalog.
	ErrUnknownCatalog = errors.New("terrain: unknown catalog")

	// ErrOutOfRange reports a grid index outside the field bounds.
	ErrOutOfRange = errors.New("terrain: grid index out of range")

	// ErrAssigned reports a second assignment to an already painted cell.
	ErrAssigned = errors.New("terrain: cell already assigned")

	// ErrUnassigned reports a read of a cell that was never painted.
	ErrUnassigned = errors.New("terrain: cell not assigned")
)
