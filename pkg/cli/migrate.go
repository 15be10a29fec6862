package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/repository/sqlite"
	"github.com/raceops/trackdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var dbPath string

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create or verify the SQLite database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "db",
				Usage:       "SQLite database file path",
				Value:       "trackdesk.db",
				Sources:     cli.EnvVars("TRACKDESK_DB"),
				Destination: &dbPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Migrating database", "path", dbPath)

			repo, err := sqlite.New(ctx, dbPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
			}
			if err := repo.Close(); err != nil {
				return goerr.Wrap(err, "failed to close database")
			}

			logger.Info("Database schema is ready", "path", dbPath)
			return nil
		},
	}
}
