package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
)

func TestIncidentClone(t *testing.T) {
	resolved := time.Date(2026, 5, 17, 14, 30, 0, 0, time.UTC)
	src := &model.Incident{
		ID:         42,
		Category:   types.CategoryCollision,
		Location:   "Turn 5",
		Units:      []string{"Safety 1", "Medic 2"},
		Status:     types.StatusCompleted,
		ResolvedAt: &resolved,
	}

	cloned := src.Clone()

	gt.Value(t, cloned.ID).Equal(src.ID)
	gt.Value(t, cloned.Location).Equal(src.Location)
	gt.Array(t, cloned.Units).Equal(src.Units)

	// Mutating the clone must not leak into the source
	cloned.Units[0] = "Safety 9"
	gt.Value(t, src.Units[0]).Equal("Safety 1")

	*cloned.ResolvedAt = cloned.ResolvedAt.Add(time.Hour)
	gt.Bool(t, src.ResolvedAt.Equal(resolved)).True()
}

func TestIncidentStatus(t *testing.T) {
	t.Run("open incident", func(t *testing.T) {
		inc := &model.Incident{Status: types.StatusOpen}
		gt.Bool(t, inc.IsCompleted()).False()
		gt.Value(t, inc.Color()).Equal(types.ColorAttention)
	})

	t.Run("completed incident", func(t *testing.T) {
		inc := &model.Incident{Status: types.StatusCompleted}
		gt.Bool(t, inc.IsCompleted()).True()
		gt.Value(t, inc.Color()).Equal(types.ColorClear)
	})
}

func TestTrackRegistry(t *testing.T) {
	registry := model.NewTrackRegistry("Road America")
	registry.RegisterLocation(model.Location{Name: "Turn 3"})
	registry.RegisterLocation(model.Location{Name: "Turn 5"})
	registry.RegisterUnit(model.Unit{Name: "Safety 1", Category: "Safety Truck"})

	t.Run("known entries validate", func(t *testing.T) {
		gt.NoError(t, registry.ValidateLocation("Turn 3"))
		gt.NoError(t, registry.ValidateUnit("Safety 1"))
	})

	t.Run("unknown entries rejected", func(t *testing.T) {
		gt.Value(t, registry.ValidateLocation("Turn 14")).NotNil()
		gt.Value(t, registry.ValidateUnit("Medic 9")).NotNil()
	})

	t.Run("registration order preserved", func(t *testing.T) {
		locs := registry.Locations()
		gt.Array(t, locs).Length(2)
		gt.Value(t, locs[0].Name).Equal("Turn 3")
		gt.Value(t, locs[1].Name).Equal("Turn 5")
	})

	t.Run("duplicate registration replaces in place", func(t *testing.T) {
		registry.RegisterUnit(model.Unit{Name: "Safety 1", Category: "Fire"})
		units := registry.Units()
		gt.Array(t, units).Length(1)
		gt.Value(t, units[0].Category).Equal("Fire")
	})
}
