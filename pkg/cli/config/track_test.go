package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/cli/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestLoadTrackConfig(t *testing.T) {
	path := writeConfig(t, `
name = "Willow Creek Raceway"

[[location]]
name = "Turn 1"

[[location]]
name = "Turn 2"

[[unit]]
name = "Medic 1"
category = "Medical"

[[unit]]
name = "Fire 1"
category = "Fire"
`)

	cfg, err := config.LoadTrackConfig(path)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Name).Equal("Willow Creek Raceway")
	gt.Array(t, cfg.Locations).Length(2)
	gt.Array(t, cfg.Units).Length(2)

	registry := cfg.ToRegistry()
	gt.Value(t, registry.Name()).Equal("Willow Creek Raceway")
	gt.NoError(t, registry.ValidateLocation("Turn 2"))
	gt.NoError(t, registry.ValidateUnit("Fire 1"))
	gt.Error(t, registry.ValidateLocation("Turn 99"))
}

func TestLoadTrackConfig_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadTrackConfig(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeConfig(t, `name = [broken`)
		_, err := config.LoadTrackConfig(path)
		gt.Error(t, err)
	})

	t.Run("missing track name", func(t *testing.T) {
		path := writeConfig(t, `
[[location]]
name = "Turn 1"
`)
		_, err := config.LoadTrackConfig(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrMissingName)).True()
	})

	t.Run("duplicate location", func(t *testing.T) {
		path := writeConfig(t, `
name = "Test Circuit"

[[location]]
name = "Turn 1"

[[location]]
name = "Turn 1"
`)
		_, err := config.LoadTrackConfig(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrDuplicateName)).True()
	})

	t.Run("unnamed unit", func(t *testing.T) {
		path := writeConfig(t, `
name = "Test Circuit"

[[unit]]
category = "Medical"
`)
		_, err := config.LoadTrackConfig(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrMissingName)).True()
	})
}
