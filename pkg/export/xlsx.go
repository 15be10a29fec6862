package export

import (
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Incidents"

func renderXLSX(w io.Writer, incidents []*model.Incident, opts Options) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return goerr.Wrap(err, "failed to name sheet")
	}

	for i, col := range opts.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return goerr.Wrap(err, "failed to build header cell name")
		}
		if err := f.SetCellValue(xlsxSheet, cell, col.Header()); err != nil {
			return goerr.Wrap(err, "failed to write header cell", goerr.V("column", col))
		}
	}

	for r, inc := range incidents {
		for i, col := range opts.Columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return goerr.Wrap(err, "failed to build cell name")
			}
			if err := f.SetCellValue(xlsxSheet, cell, cellValue(inc, col)); err != nil {
				return goerr.Wrap(err, "failed to write cell", goerr.V("id", inc.ID), goerr.V("column", col))
			}
		}
	}

	if last, err := excelize.ColumnNumberToName(len(opts.Columns)); err == nil {
		_ = f.SetColWidth(xlsxSheet, "A", last, 18)
	}

	if err := f.Write(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}
