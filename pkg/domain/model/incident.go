package model

import (
	"time"

	"github.com/raceops/trackdesk/pkg/domain/types"
)

// Incident represents a single logged on-track event
type Incident struct {
	ID           int64
	Category     types.Category
	Location     string
	Units        []string // assigned response unit names
	Disposition  string
	Status       types.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DispatchedAt *time.Time
	ArrivedAt    *time.Time
	ResolvedAt   *time.Time
}

// IsCompleted reports whether the incident has been resolved.
func (i *Incident) IsCompleted() bool {
	return i.Status.Normalize() == types.StatusCompleted
}

// Color returns the display color category for the incident row.
func (i *Incident) Color() types.ColorCategory {
	return i.Status.Color()
}

// Clone returns a deep copy of the incident.
func (i *Incident) Clone() *Incident {
	units := make([]string, len(i.Units))
	copy(units, i.Units)

	return &Incident{
		ID:           i.ID,
		Category:     i.Category,
		Location:     i.Location,
		Units:        units,
		Disposition:  i.Disposition,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
		DispatchedAt: copyTime(i.DispatchedAt),
		ArrivedAt:    copyTime(i.ArrivedAt),
		ResolvedAt:   copyTime(i.ResolvedAt),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
