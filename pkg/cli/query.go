package cli

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// queryFlags collects the shared incident filter and ordering flags used by
// the list and export commands.
type queryFlags struct {
	category string
	status   string
	since    string
	until    string
	sortKey  string
	order    string
}

func (q *queryFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Filter by incident category",
			Category:    "Filter",
			Destination: &q.category,
		},
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Filter by status (open or completed)",
			Category:    "Filter",
			Destination: &q.status,
		},
		&cli.StringFlag{
			Name:        "since",
			Usage:       "Only incidents reported at or after this RFC3339 time",
			Category:    "Filter",
			Destination: &q.since,
		},
		&cli.StringFlag{
			Name:        "until",
			Usage:       "Only incidents reported at or before this RFC3339 time",
			Category:    "Filter",
			Destination: &q.until,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "Sort key (created_at, updated_at, category, status)",
			Category:    "Filter",
			Destination: &q.sortKey,
		},
		&cli.StringFlag{
			Name:        "order",
			Usage:       "Sort order (asc or desc)",
			Category:    "Filter",
			Destination: &q.order,
		},
	}
}

func (q *queryFlags) ToQuery() (usecase.ListQuery, error) {
	out := usecase.ListQuery{
		SortKey:   types.SortKey(q.sortKey),
		SortOrder: types.SortOrder(q.order),
	}

	if q.category != "" {
		cat := types.Category(q.category)
		out.Category = &cat
	}
	if q.status != "" {
		st := types.Status(q.status)
		out.Status = &st
	}
	if q.since != "" {
		ts, err := time.Parse(time.RFC3339, q.since)
		if err != nil {
			return out, goerr.Wrap(err, "since must be RFC3339", goerr.V("since", q.since))
		}
		out.Since = &ts
	}
	if q.until != "" {
		ts, err := time.Parse(time.RFC3339, q.until)
		if err != nil {
			return out, goerr.Wrap(err, "until must be RFC3339", goerr.V("until", q.until))
		}
		out.Until = &ts
	}

	return out, nil
}
