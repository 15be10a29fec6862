package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/cli/config"
	"github.com/raceops/trackdesk/pkg/export"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/raceops/trackdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdExport() *cli.Command {
	var repoCfg config.Repository
	var query queryFlags
	var formatName string
	var out string
	var title string
	var columns string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Export format (pdf, xlsx, html, csv or all)",
			Value:       "pdf",
			Destination: &formatName,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output file path (directory when --format=all)",
			Value:       "incidents.pdf",
			Destination: &out,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Document title",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "columns",
			Usage:       "Comma-separated column selection (e.g. id,location,status)",
			Destination: &columns,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, query.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Write the incident board to a document file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer repo.Close() //nolint:errcheck // read-only command

			q, err := query.ToQuery()
			if err != nil {
				return err
			}

			opts := export.Options{Title: title}
			if columns != "" {
				for _, col := range strings.Split(columns, ",") {
					opts.Columns = append(opts.Columns, export.Column(strings.TrimSpace(col)))
				}
			}

			uc := usecase.New(repo)

			if formatName == "all" {
				return exportAll(ctx, uc, out, q, opts)
			}

			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			if err := uc.ExportBoard(ctx, out, format, q, opts); err != nil {
				return err
			}

			logging.Default().Info("Exported incident board", "format", format, "path", out)
			return nil
		},
	}
}

// exportAll writes every supported format into the output directory
// concurrently. Renders are independent so failures do not affect the
// documents that succeed before cancellation.
func exportAll(ctx context.Context, uc *usecase.UseCases, dir string, q usecase.ListQuery, opts export.Options) error {
	eg, ctx := errgroup.WithContext(ctx)

	for _, format := range export.AllFormats() {
		path := filepath.Join(dir, "incidents"+format.Ext())
		eg.Go(func() error {
			if err := uc.ExportBoard(ctx, path, format, q, opts); err != nil {
				return goerr.Wrap(err, "failed to export", goerr.V("format", format))
			}
			logging.Default().Info("Exported incident board", "format", format, "path", path)
			return nil
		})
	}

	return eg.Wait()
}
