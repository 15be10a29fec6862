package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/usecase"
)

func TestAddNote(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	inc, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryCollision,
		Location: "Turn 7",
	})
	gt.NoError(t, err).Required()

	note, err := uc.AddNote(ctx, inc.ID, "Car 42 into the barrier, driver out and walking")
	gt.NoError(t, err).Required()
	gt.Number(t, note.ID).Equal(1)
	gt.Value(t, note.IncidentID).Equal(inc.ID)
	gt.Bool(t, note.CreatedAt.IsZero()).False()
}

func TestAddNote_EmptyBody(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	inc, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryOther,
		Location: "Paddock",
	})
	gt.NoError(t, err).Required()

	_, err = uc.AddNote(ctx, inc.ID, "  \t ")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrEmptyNote)).True()
}

func TestAddNote_MissingIncident(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	_, err := uc.AddNote(ctx, 404, "orphan")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrIncidentNotFound)).True()
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases()

	inc, err := uc.CreateIncident(ctx, usecase.IncidentInput{
		Category: types.CategoryMedical,
		Location: "Turn 3",
	})
	gt.NoError(t, err).Required()

	for _, body := range []string{"dispatched medic", "on scene", "transported"} {
		_, err := uc.AddNote(ctx, inc.ID, body)
		gt.NoError(t, err).Required()
	}

	notes := gt.R1(uc.ListNotes(ctx, inc.ID)).NoError(t)
	gt.Array(t, notes).Length(3)
	gt.Value(t, notes[0].Body).Equal("dispatched medic")
	gt.Value(t, notes[2].Body).Equal("transported")
}
