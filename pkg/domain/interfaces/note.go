package interfaces

import (
	"context"

	"github.com/raceops/trackdesk/pkg/domain/model"
)

// NoteRepository defines the interface for incident note data access
type NoteRepository interface {
	// Add stores a new note for an incident with an auto-generated ID
	Add(ctx context.Context, note *model.Note) (*model.Note, error)

	// ListByIncident retrieves all notes of an incident, oldest first
	ListByIncident(ctx context.Context, incidentID int64) ([]*model.Note, error)
}
