package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
)

// IncidentInput carries the user-editable incident fields.
type IncidentInput struct {
	Category    types.Category
	Location    string
	Units       []string
	Disposition string
}

func (uc *UseCases) validateInput(in IncidentInput) error {
	if !in.Category.IsValid() {
		return goerr.Wrap(ErrInvalidCategory, "category must be one of the known incident types",
			goerr.V("category", in.Category))
	}
	if strings.TrimSpace(in.Location) == "" {
		return goerr.Wrap(ErrMissingLocation, "location is required")
	}

	if uc.track != nil {
		if err := uc.track.ValidateLocation(in.Location); err != nil {
			return err
		}
		for _, unit := range in.Units {
			if err := uc.track.ValidateUnit(unit); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateIncident validates the input and stores a new open incident.
func (uc *UseCases) CreateIncident(ctx context.Context, in IncidentInput) (*model.Incident, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}

	inc := &model.Incident{
		Category:    in.Category,
		Location:    in.Location,
		Units:       in.Units,
		Disposition: in.Disposition,
		Status:      types.StatusOpen,
	}

	created, err := uc.repo.Incident().Create(ctx, inc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}
	return created, nil
}

// GetIncident retrieves a single incident by id.
func (uc *UseCases) GetIncident(ctx context.Context, id int64) (*model.Incident, error) {
	return uc.getIncident(ctx, id)
}

// getIncident loads an incident, translating the repository's not-found into
// ErrIncidentNotFound. Storage failures keep their own identity.
func (uc *UseCases) getIncident(ctx context.Context, id int64) (*model.Incident, error) {
	inc, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to load incident", goerr.V(IncidentIDKey, id))
	}
	return inc, nil
}

// UpdateIncident applies user edits to an existing incident. Lifecycle fields
// (status, resolved_at, timeline stamps) are preserved; use the dedicated
// operations to change them.
func (uc *UseCases) UpdateIncident(ctx context.Context, id int64, in IncidentInput) (*model.Incident, error) {
	existing, err := uc.getIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.validateInput(in); err != nil {
		return nil, goerr.Wrap(err, "invalid incident update", goerr.V(IncidentIDKey, id))
	}

	existing.Category = in.Category
	existing.Location = in.Location
	existing.Units = in.Units
	existing.Disposition = in.Disposition

	updated, err := uc.repo.Incident().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V(IncidentIDKey, id))
	}
	return updated, nil
}

// CompleteIncident transitions an open incident to completed, stamping
// resolved_at exactly once. Completing twice fails and never touches the
// original resolution time.
func (uc *UseCases) CompleteIncident(ctx context.Context, id int64) (*model.Incident, error) {
	existing, err := uc.getIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.IsCompleted() {
		return nil, goerr.Wrap(ErrAlreadyCompleted, "incident was already resolved",
			goerr.V(IncidentIDKey, id), goerr.V("resolved_at", existing.ResolvedAt))
	}

	now := time.Now().UTC()
	existing.Status = types.StatusCompleted
	existing.ResolvedAt = &now

	updated, err := uc.repo.Incident().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to complete incident", goerr.V(IncidentIDKey, id))
	}
	return updated, nil
}

// MarkDispatched stamps the moment units were sent out. Set once.
func (uc *UseCases) MarkDispatched(ctx context.Context, id int64) (*model.Incident, error) {
	existing, err := uc.getIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.DispatchedAt != nil {
		return nil, goerr.Wrap(ErrAlreadyDispatched, "dispatch time already recorded",
			goerr.V(IncidentIDKey, id))
	}

	now := time.Now().UTC()
	existing.DispatchedAt = &now

	updated, err := uc.repo.Incident().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record dispatch", goerr.V(IncidentIDKey, id))
	}
	return updated, nil
}

// MarkArrived stamps the moment units reached the scene. Set once.
func (uc *UseCases) MarkArrived(ctx context.Context, id int64) (*model.Incident, error) {
	existing, err := uc.getIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ArrivedAt != nil {
		return nil, goerr.Wrap(ErrAlreadyArrived, "arrival time already recorded",
			goerr.V(IncidentIDKey, id))
	}

	now := time.Now().UTC()
	existing.ArrivedAt = &now

	updated, err := uc.repo.Incident().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record arrival", goerr.V(IncidentIDKey, id))
	}
	return updated, nil
}

// DeleteIncident removes an incident and its notes permanently.
func (uc *UseCases) DeleteIncident(ctx context.Context, id int64) error {
	if err := uc.repo.Incident().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete incident", goerr.V(IncidentIDKey, id))
	}
	return nil
}

// ListQuery is the conjunction filter and ordering for incident listings.
type ListQuery struct {
	Category  *types.Category
	Status    *types.Status
	Since     *time.Time
	Until     *time.Time
	SortKey   types.SortKey
	SortOrder types.SortOrder
}

func (q ListQuery) validate() error {
	if q.Category != nil && !q.Category.IsValid() {
		return goerr.Wrap(ErrInvalidQuery, "unknown category filter", goerr.V("category", *q.Category))
	}
	if q.Status != nil && !q.Status.IsValid() {
		return goerr.Wrap(ErrInvalidQuery, "unknown status filter", goerr.V("status", *q.Status))
	}
	if q.SortKey != "" && !q.SortKey.IsValid() {
		return goerr.Wrap(ErrInvalidQuery, "unknown sort key", goerr.V("sort", q.SortKey))
	}
	if q.SortOrder != "" && !q.SortOrder.IsValid() {
		return goerr.Wrap(ErrInvalidQuery, "unknown sort order", goerr.V("order", q.SortOrder))
	}
	return nil
}

func (q ListQuery) options() []interfaces.ListIncidentOption {
	var opts []interfaces.ListIncidentOption
	if q.Category != nil {
		opts = append(opts, interfaces.WithCategory(*q.Category))
	}
	if q.Status != nil {
		opts = append(opts, interfaces.WithStatus(*q.Status))
	}
	if q.Since != nil {
		opts = append(opts, interfaces.WithCreatedSince(*q.Since))
	}
	if q.Until != nil {
		opts = append(opts, interfaces.WithCreatedUntil(*q.Until))
	}
	if q.SortKey != "" {
		opts = append(opts, interfaces.WithSort(q.SortKey, q.SortOrder))
	}
	return opts
}

// ListIncidents returns incidents matching the query. An empty query returns
// every incident in store-default (id ascending) order.
func (uc *UseCases) ListIncidents(ctx context.Context, q ListQuery) ([]*model.Incident, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	incidents, err := uc.repo.Incident().List(ctx, q.options()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return incidents, nil
}
