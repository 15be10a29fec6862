package usecase

import (
	"errors"

	"github.com/raceops/trackdesk/pkg/repository/memory"
	"github.com/raceops/trackdesk/pkg/repository/sqlite"
)

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrIncidentNotFound = errors.New("incident not found")

	// Validation errors
	ErrInvalidCategory = errors.New("invalid incident category")
	ErrMissingLocation = errors.New("incident location is required")
	ErrEmptyNote       = errors.New("note body is empty")
	ErrInvalidQuery    = errors.New("invalid list query")

	// Status errors
	ErrAlreadyCompleted  = errors.New("incident is already completed")
	ErrAlreadyDispatched = errors.New("units already dispatched")
	ErrAlreadyArrived    = errors.New("units already on scene")

	// Export errors
	ErrExportFailed = errors.New("export failed")
)

// Context keys for error values
const (
	IncidentIDKey = "incident_id"
)

// isNotFound reports whether err is a repository not-found, as opposed to a
// genuine storage failure that must keep its own identity.
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, sqlite.ErrNotFound)
}
