package usecase

import (
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

// UseCases bundles the application operations over one repository.
type UseCases struct {
	repo  interfaces.Repository
	track *model.TrackRegistry
}

type Option func(*UseCases)

// WithTrack enables pick-list validation against the configured track.
func WithTrack(track *model.TrackRegistry) Option {
	return func(uc *UseCases) {
		uc.track = track
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Track returns the configured track registry, or nil when none is loaded.
func (uc *UseCases) Track() *model.TrackRegistry {
	return uc.track
}
