package export

import (
	"encoding/csv"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

func renderCSV(w io.Writer, incidents []*model.Incident, opts Options) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		header[i] = col.Header()
	}
	if err := cw.Write(header); err != nil {
		return goerr.Wrap(err, "failed to write csv header")
	}

	for _, inc := range incidents {
		row := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			row[i] = cellValue(inc, col)
		}
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write csv row", goerr.V("id", inc.ID))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush csv")
	}
	return nil
}
