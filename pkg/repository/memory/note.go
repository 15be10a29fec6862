package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

type noteRepository struct {
	mu        sync.RWMutex
	notes     map[int64]*model.Note
	nextID    int64
	incidents *incidentRepository
}

func newNoteRepository(incidents *incidentRepository) *noteRepository {
	r := &noteRepository{
		notes:     make(map[int64]*model.Note),
		nextID:    1,
		incidents: incidents,
	}
	// Hard-deleting an incident drops its notes as well.
	incidents.onDelete = r.deleteByIncident
	return r
}

func (r *noteRepository) Add(ctx context.Context, note *model.Note) (*model.Note, error) {
	if _, err := r.incidents.Get(ctx, note.IncidentID); err != nil {
		return nil, goerr.Wrap(err, "cannot add note to missing incident",
			goerr.V("incident_id", note.IncidentID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := note.Clone()
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.notes[created.ID] = created
	return created.Clone(), nil
}

func (r *noteRepository) ListByIncident(ctx context.Context, incidentID int64) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*model.Note, 0)
	for _, n := range r.notes {
		if n.IncidentID == incidentID {
			notes = append(notes, n.Clone())
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func (r *noteRepository) deleteByIncident(incidentID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notes {
		if n.IncidentID == incidentID {
			delete(r.notes, id)
		}
	}
}
