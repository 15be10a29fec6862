package interfaces

import (
	"context"

	"github.com/raceops/trackdesk/pkg/domain/model"
)

// IncidentRepository defines the interface for Incident data access
type IncidentRepository interface {
	// Create stores a new incident with an auto-generated ID and returns it.
	// IDs are never reused, even after deletion.
	Create(ctx context.Context, inc *model.Incident) (*model.Incident, error)

	// Get retrieves an incident by ID
	Get(ctx context.Context, id int64) (*model.Incident, error)

	// List retrieves incidents with optional filtering and ordering.
	// Without options it returns all incidents in id ascending order.
	// Equal sort-key values always tie-break by id ascending.
	List(ctx context.Context, opts ...ListIncidentOption) ([]*model.Incident, error)

	// Update replaces an existing incident and refreshes UpdatedAt
	Update(ctx context.Context, inc *model.Incident) (*model.Incident, error)

	// Delete removes an incident and its notes permanently
	Delete(ctx context.Context, id int64) error
}
