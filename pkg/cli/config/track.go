package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// TrackConfig is the TOML track description: the circuit name plus the
// pick-lists the control room chooses from when logging incidents.
type TrackConfig struct {
	Name      string     `toml:"name"`
	Locations []Location `toml:"location"`
	Units     []Unit     `toml:"unit"`
}

// Location represents a track position configuration
type Location struct {
	Name string `toml:"name"`
}

// Validate checks if the Location is valid
func (l *Location) Validate() error {
	if l.Name == "" {
		return goerr.Wrap(ErrMissingName, "location name is required")
	}
	return nil
}

// Unit represents a response unit configuration
type Unit struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Validate checks if the Unit is valid
func (u *Unit) Validate() error {
	if u.Name == "" {
		return goerr.Wrap(ErrMissingName, "unit name is required")
	}
	return nil
}

// Validate checks if the TrackConfig is valid
func (t *TrackConfig) Validate() error {
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "track name is required")
	}

	locationNames := make(map[string]bool)
	for _, loc := range t.Locations {
		if err := loc.Validate(); err != nil {
			return goerr.Wrap(err, "invalid location")
		}
		if locationNames[loc.Name] {
			return goerr.Wrap(ErrDuplicateName, "duplicate location", goerr.V("name", loc.Name))
		}
		locationNames[loc.Name] = true
	}

	unitNames := make(map[string]bool)
	for _, u := range t.Units {
		if err := u.Validate(); err != nil {
			return goerr.Wrap(err, "invalid unit")
		}
		if unitNames[u.Name] {
			return goerr.Wrap(ErrDuplicateName, "duplicate unit", goerr.V("name", u.Name))
		}
		unitNames[u.Name] = true
	}

	return nil
}

// ToRegistry converts the validated config into the domain registry.
func (t *TrackConfig) ToRegistry() *model.TrackRegistry {
	registry := model.NewTrackRegistry(t.Name)
	for _, loc := range t.Locations {
		registry.RegisterLocation(model.Location{Name: loc.Name})
	}
	for _, u := range t.Units {
		registry.RegisterUnit(model.Unit{Name: u.Name, Category: u.Category})
	}
	return registry
}

// LoadTrackConfig loads and validates a track configuration from a TOML file
func LoadTrackConfig(path string) (*TrackConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read track config", goerr.V("path", path))
	}

	var cfg TrackConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML track config", goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "track config validation failed", goerr.V("path", path))
	}

	return &cfg, nil
}

// Track holds the CLI flag for the optional track configuration file
type Track struct {
	path string
}

// Flags returns CLI flags for track configuration
func (t *Track) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "track-config",
			Usage:       "Track configuration TOML file (enables location/unit pick-list validation)",
			Category:    "Track",
			Sources:     cli.EnvVars("TRACKDESK_TRACK_CONFIG"),
			Destination: &t.path,
		},
	}
}

// Configure loads the track registry, or returns nil when no file is set.
func (t *Track) Configure() (*model.TrackRegistry, error) {
	if t.path == "" {
		return nil, nil
	}

	cfg, err := LoadTrackConfig(t.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToRegistry(), nil
}
