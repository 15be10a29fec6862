package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/cli/config"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var repoCfg config.Repository
	var query queryFlags

	flags := append(repoCfg.Flags(), query.Flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print the incident board to the terminal",
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

			uc := usecase.New(repo)
			incidents, err := uc.ListIncidents(ctx, q)
			if err != nil {
				return goerr.Wrap(err, "failed to list incidents")
			}

			printBoard(os.Stdout, incidents)
			return nil
		},
	}
}

var (
	openRow  = color.New(color.FgRed)
	clearRow = color.New(color.FgGreen)
)

func printBoard(w *os.File, incidents []*model.Incident) {
	if len(incidents) == 0 {
		fmt.Fprintln(w, "No incidents.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tLOCATION\tUNIT(S)\tREPORTED\tRESOLVED\tSTATUS")

	for _, inc := range incidents {
		row := openRow
		if inc.Color() == types.ColorClear {
			row = clearRow
		}

		resolved := ""
		if inc.ResolvedAt != nil {
			resolved = inc.ResolvedAt.UTC().Format("2006-01-02 15:04")
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inc.ID,
			inc.Category,
			inc.Location,
			strings.Join(inc.Units, ", "),
			inc.CreatedAt.UTC().Format("2006-01-02 15:04"),
			resolved,
			row.Sprint(inc.Status),
		)
	}

	tw.Flush() //nolint:errcheck // terminal output
}
