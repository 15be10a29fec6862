package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/repository/memory"
	"github.com/raceops/trackdesk/pkg/usecase"
)

// failingRepository simulates a broken store: every operation returns the
// same underlying error.
type failingRepository struct {
	err error
}

func (r *failingRepository) Incident() interfaces.IncidentRepository {
	return &failingIncidentRepository{err: r.err}
}

func (r *failingRepository) Note() interfaces.NoteRepository {
	return &failingNoteRepository{err: r.err}
}

func (r *failingRepository) Close() error {
	return nil
}

type failingIncidentRepository struct {
	err error
}

func (r *failingIncidentRepository) Create(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	return nil, r.err
}

func (r *failingIncidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	return nil, r.err
}

func (r *failingIncidentRepository) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	return nil, r.err
}

func (r *failingIncidentRepository) Update(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	return nil, r.err
}

func (r *failingIncidentRepository) Delete(ctx context.Context, id int64) error {
	return r.err
}

type failingNoteRepository struct {
	err error
}

func (r *failingNoteRepository) Add(ctx context.Context, note *model.Note) (*model.Note, error) {
	return nil, r.err
}

func (r *failingNoteRepository) ListByIncident(ctx context.Context, incidentID int64) ([]*model.Note, error) {
	return nil, r.err
}

func newTestUseCases() *usecase.UseCases {
	return usecase.New(memory.New())
}

func TestCreateIncident(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	inc, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryMedical,
		Location: "Turn 3",
	})
	gt.NoError(t, err).Required()

	gt.Number(t, inc.ID).Equal(1)
	gt.Value(t, inc.Status).Equal(types.StatusOpen)
	gt.Value(t, inc.ResolvedAt).Nil()
	gt.Bool(t, inc.CreatedAt.IsZero()).False()
	gt.Value(t, inc.UpdatedAt).Equal(inc.CreatedAt)
	gt.Value(t, inc.Color()).Equal(types.ColorAttention)
}

func TestCreateIncident_Validation(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.CreateIncident(ctx, usecase.IncidentInput{
			Category: types.Category("earthquake"),
			Location: "Turn 3",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCategory)).True()
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := uc.CreateIncident(ctx, usecase.IncidentInput{
			Category: types.CategoryFire,
			Location: "   ",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingLocation)).True()
	})
}

func TestCreateIncident_TrackValidation(t *testing.T) {
	ctx := context.Background()

	track := model.NewTrackRegistry("Test Circuit")
	track.RegisterLocation(model.Location{Name: "Turn 3"})
	track.RegisterUnit(model.Unit{Name: "Medic 1", Category: "Medical"})

	uc := usecase.New(memory.New(), usecase.WithTrack(track))

	t.Run("registered location and unit", func(t *testing.T) {
		inc, err := uc.CreateIncident(ctx, usecase.IncidentInput{
			Category: types.CategoryMedical,
			Location: "Turn 3",
			Units:    []string{"Medic 1"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, inc.Units).Equal([]string{"Medic 1"})
	})

	t.Run("unregistered location", func(t *testing.T) {
		_, err := uc.CreateIncident(ctx, usecase.IncidentInput{
			Category: types.CategoryMedical,
			Location: "Turn 99",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrUnknownLocation)).True()
	})

	t.Run("unregistered unit", func(t *testing.T) {
		_, err := uc.CreateIncident(ctx, usecase.IncidentInput{
			Category: types.CategoryMedical,
			Location: "Turn 3",
			Units:    []string{"Ghost 9"},
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrUnknownUnit)).True()
	})
}

func TestGetIncident(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	created, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryCollision,
		Location: "Pit entry",
	})
	gt.NoError(t, err).Required()

	got, err := uc.GetIncident(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Location).Equal("Pit entry")

	_, err = uc.GetIncident(ctx, 999)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).True()
}

func TestUpdateIncident_PreservesLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	created, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryMechanical,
		Location: "Back straight",
	})
	gt.NoError(t, err).Required()

	completed, err := uc.CompleteIncident(ctx, created.ID)
	gt.NoError(t, err).Required()

	updated, err := uc.UpdateIncident(ctx, created.ID, usecase.IncidentInput{
		Category:    types.CategoryMechanical,
		Location:    "Back straight",
		Disposition: "Car recovered, oil cleaned",
	})
	gt.NoError(t, err).Required()

	gt.Value(t, updated.Disposition).Equal("Car recovered, oil cleaned")
	gt.Value(t, updated.Status).Equal(types.StatusCompleted)
	gt.Value(t, updated.ResolvedAt).NotNil()
	gt.Bool(t, updated.ResolvedAt.Equal(*completed.ResolvedAt)).True()
	gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
}

func TestUpdateIncident_Missing(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	_, err := uc.UpdateIncident(ctx, 42, usecase.IncidentInput{
		Category: types.CategoryOther,
		Location: "Paddock",
	})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).True()
}

func TestCompleteIncident(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	created, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryMedical,
		Location: "Turn 3",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, created.Status).Equal(types.StatusOpen)
	gt.Value(t, created.ResolvedAt).Nil()

	time.Sleep(10 * time.Millisecond)

	completed, err := uc.CompleteIncident(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, completed.Status).Equal(types.StatusCompleted)
	gt.Value(t, completed.ResolvedAt).NotNil()
	gt.Bool(t, completed.UpdatedAt.After(created.UpdatedAt)).True()
	gt.Value(t, completed.Color()).Equal(types.ColorClear)

	// A second completion must fail and leave the first resolution time alone.
	_, err = uc.CompleteIncident(ctx, created.ID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrAlreadyCompleted)).True()

	again, err := uc.GetIncident(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, again.ResolvedAt.Equal(*completed.ResolvedAt)).True()
}

func TestMarkDispatchedAndArrived(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	created, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryFire,
		Location: "Pit lane",
		Units:    []string{"Fire 1"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, created.DispatchedAt).Nil()
	gt.Value(t, created.ArrivedAt).Nil()

	dispatched, err := uc.MarkDispatched(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, dispatched.DispatchedAt).NotNil()

	_, err = uc.MarkDispatched(ctx, created.ID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrAlreadyDispatched)).True()

	arrived, err := uc.MarkArrived(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, arrived.ArrivedAt).NotNil()
	gt.Bool(t, arrived.DispatchedAt.Equal(*dispatched.DispatchedAt)).True()

	_, err = uc.MarkArrived(ctx, created.ID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrAlreadyArrived)).True()
}

func TestDeleteIncident(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	created, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryOther,
		Location: "Paddock",
	})
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.DeleteIncident(ctx, created.ID))

	_, err = uc.GetIncident(ctx, created.ID)
	gt.Error(t, err)

	err = uc.DeleteIncident(ctx, created.ID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).True()
}

func TestListIncidents(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	for _, in := range []usecase.IncidentInput{
		{Category: types.CategoryMedical, Location: "Turn 1"},
		{Category: types.CategoryFire, Location: "Turn 2"},
		{Category: types.CategoryMedical, Location: "Turn 3"},
	} {
		_, err := uc.CreateIncident(ctx, in)
		gt.NoError(t, err).Required()
	}

	_, err := uc.CompleteIncident(ctx, 2)
	gt.NoError(t, err).Required()

	t.Run("all in id order", func(t *testing.T) {
		got := gt.R1(uc.ListIncidents(ctx, usecase.ListQuery{})).NoError(t)
		gt.Array(t, got).Length(3)
		gt.Number(t, got[0].ID).Equal(1)
		gt.Number(t, got[2].ID).Equal(3)
	})

	t.Run("filter by category", func(t *testing.T) {
		cat := types.CategoryMedical
		got := gt.R1(uc.ListIncidents(ctx, usecase.ListQuery{Category: &cat})).NoError(t)
		gt.Array(t, got).Length(2)
	})

	t.Run("filter by status", func(t *testing.T) {
		st := types.StatusCompleted
		got := gt.R1(uc.ListIncidents(ctx, usecase.ListQuery{Status: &st})).NoError(t)
		gt.Array(t, got).Length(1)
		gt.Number(t, got[0].ID).Equal(2)
	})

	t.Run("invalid sort key", func(t *testing.T) {
		_, err := uc.ListIncidents(ctx, usecase.ListQuery{SortKey: types.SortKey("severity")})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidQuery)).True()
	})

	t.Run("invalid status filter", func(t *testing.T) {
		st := types.Status("pending")
		_, err := uc.ListIncidents(ctx, usecase.ListQuery{Status: &st})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidQuery)).True()
	})
}

func TestStorageFailureKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("disk I/O error")
	uc := usecase.New(&failingRepository{err: storageErr})

	t.Run("get", func(t *testing.T) {
		_, err := uc.GetIncident(ctx, 1)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, storageErr)).True()
		gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).False()
	})

	t.Run("complete", func(t *testing.T) {
		_, err := uc.CompleteIncident(ctx, 1)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, storageErr)).True()
		gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).False()
	})

	t.Run("delete", func(t *testing.T) {
		err := uc.DeleteIncident(ctx, 1)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, storageErr)).True()
		gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).False()
	})

	t.Run("add note", func(t *testing.T) {
		_, err := uc.AddNote(ctx, 1, "driver out")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, storageErr)).True()
		gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).False()
	})
}
