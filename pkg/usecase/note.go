package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

// AddNote attaches a time-stamped note to an incident.
func (uc *UseCases) AddNote(ctx context.Context, incidentID int64, body string) (*model.Note, error) {
	if strings.TrimSpace(body) == "" {
		return nil, goerr.Wrap(ErrEmptyNote, "a note needs text", goerr.V(IncidentIDKey, incidentID))
	}

	note, err := uc.repo.Note().Add(ctx, &model.Note{
		IncidentID: incidentID,
		Body:       body,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrIncidentNotFound, "cannot note a missing incident",
				goerr.V(IncidentIDKey, incidentID))
		}
		return nil, goerr.Wrap(err, "failed to add note", goerr.V(IncidentIDKey, incidentID))
	}
	return note, nil
}

// ListNotes returns an incident's notes, oldest first.
func (uc *UseCases) ListNotes(ctx context.Context, incidentID int64) ([]*model.Note, error) {
	notes, err := uc.repo.Note().ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V(IncidentIDKey, incidentID))
	}
	return notes, nil
}
