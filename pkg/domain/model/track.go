package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Location is a named track position available as a pick-list entry.
type Location struct {
	Name string
}

// Unit is a response unit available for dispatch.
type Unit struct {
	Name     string
	Category string // e.g. Fire, Medical, Safety Truck
}

// ErrUnknownLocation is returned when a location is not found in the registry
var ErrUnknownLocation = goerr.New("unknown track location")

// ErrUnknownUnit is returned when a unit is not found in the registry
var ErrUnknownUnit = goerr.New("unknown response unit")

// TrackRegistry holds the track's configured pick-lists.
// It does not hold Repository or UseCase instances (settings only).
type TrackRegistry struct {
	name      string
	locations map[string]Location
	units     map[string]Unit
	locOrder  []string
	unitOrder []string
}

// NewTrackRegistry creates a new empty TrackRegistry
func NewTrackRegistry(name string) *TrackRegistry {
	return &TrackRegistry{
		name:      name,
		locations: make(map[string]Location),
		units:     make(map[string]Unit),
	}
}

// Name returns the track name
func (r *TrackRegistry) Name() string {
	return r.name
}

// RegisterLocation adds a location entry to the registry
func (r *TrackRegistry) RegisterLocation(loc Location) {
	if _, exists := r.locations[loc.Name]; !exists {
		r.locOrder = append(r.locOrder, loc.Name)
	}
	r.locations[loc.Name] = loc
}

// RegisterUnit adds a unit entry to the registry
func (r *TrackRegistry) RegisterUnit(u Unit) {
	if _, exists := r.units[u.Name]; !exists {
		r.unitOrder = append(r.unitOrder, u.Name)
	}
	r.units[u.Name] = u
}

// ValidateLocation checks that the location is registered
func (r *TrackRegistry) ValidateLocation(name string) error {
	if _, ok := r.locations[name]; !ok {
		return goerr.Wrap(ErrUnknownLocation, "location is not configured for this track",
			goerr.V("location", name))
	}
	return nil
}

// ValidateUnit checks that the unit is registered
func (r *TrackRegistry) ValidateUnit(name string) error {
	if _, ok := r.units[name]; !ok {
		return goerr.Wrap(ErrUnknownUnit, "unit is not configured for this track",
			goerr.V("unit", name))
	}
	return nil
}

// Locations returns all registered locations in registration order
func (r *TrackRegistry) Locations() []Location {
	result := make([]Location, 0, len(r.locOrder))
	for _, name := range r.locOrder {
		result = append(result, r.locations[name])
	}
	return result
}

// Units returns all registered units in registration order
func (r *TrackRegistry) Units() []Unit {
	result := make([]Unit, 0, len(r.unitOrder))
	for _, name := range r.unitOrder {
		result = append(result, r.units[name])
	}
	return result
}
