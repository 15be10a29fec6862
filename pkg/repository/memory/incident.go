package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
)

type incidentRepository struct {
	mu        sync.RWMutex
	incidents map[int64]*model.Incident
	nextID    int64

	// onDelete mimics the store's ON DELETE CASCADE for notes
	onDelete func(incidentID int64)
}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		incidents: make(map[int64]*model.Incident),
		nextID:    1,
	}
}

func (r *incidentRepository) Create(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := inc.Clone()
	created.ID = r.nextID
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.incidents[created.ID] = created
	return created.Clone(), nil
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, exists := r.incidents[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}

	return inc.Clone(), nil
}

func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.BuildListIncidentConfig(opts...)

	incidents := make([]*model.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		if cfg.Category() != nil && inc.Category != *cfg.Category() {
			continue
		}
		if cfg.Status() != nil && inc.Status.Normalize() != cfg.Status().Normalize() {
			continue
		}
		if cfg.Since() != nil && inc.CreatedAt.Before(*cfg.Since()) {
			continue
		}
		if cfg.Until() != nil && inc.CreatedAt.After(*cfg.Until()) {
			continue
		}
		incidents = append(incidents, inc.Clone())
	}

	sortIncidents(incidents, cfg.SortKey(), cfg.SortOrder())
	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.incidents[inc.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", inc.ID))
	}

	updated := inc.Clone()
	updated.CreatedAt = stored.CreatedAt // creation time is immutable
	updated.UpdatedAt = time.Now().UTC()
	updated.Status = updated.Status.Normalize()

	r.incidents[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[id]; !exists {
		return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}

	delete(r.incidents, id)
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

// sortIncidents orders incidents by the given key. Equal key values always
// fall back to id ascending so listings stay deterministic.
func sortIncidents(incidents []*model.Incident, key types.SortKey, order types.SortOrder) {
	sort.Slice(incidents, func(i, j int) bool {
		a, b := incidents[i], incidents[j]
		c := compareByKey(a, b, key)
		if c == 0 {
			return a.ID < b.ID
		}
		if order == types.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareByKey(a, b *model.Incident, key types.SortKey) int {
	switch key {
	case types.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case types.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case types.SortByCategory:
		return compareStrings(a.Category.String(), b.Category.String())
	case types.SortByStatus:
		return compareStrings(a.Status.Normalize().String(), b.Status.Normalize().String())
	default:
		// Store-default order: id ascending.
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
