package export

import (
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

// columnWeights steers how the landscape page width is shared. Free-text
// columns get more room than timestamps and flags.
var columnWeights = map[Column]float64{
	ColumnID:          0.5,
	ColumnCategory:    1.0,
	ColumnLocation:    1.5,
	ColumnUnits:       1.8,
	ColumnCreatedAt:   1.2,
	ColumnDispatched:  1.2,
	ColumnArrived:     1.2,
	ColumnResolvedAt:  1.2,
	ColumnUpdatedAt:   1.2,
	ColumnDisposition: 1.8,
	ColumnStatus:      0.8,
}

const (
	pdfMargin = 10.0
	pdfRowH   = 7.0
)

func renderPDF(w io.Writer, incidents []*model.Incident, opts Options) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin

	widths := make([]float64, len(opts.Columns))
	var total float64
	for _, col := range opts.Columns {
		weight, ok := columnWeights[col]
		if !ok {
			weight = 1.0
		}
		total += weight
	}
	for i, col := range opts.Columns {
		weight, ok := columnWeights[col]
		if !ok {
			weight = 1.0
		}
		widths[i] = usable * weight / total
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(0xf3, 0xf4, 0xf6)
		for i, col := range opts.Columns {
			pdf.CellFormat(widths[i], pdfRowH, tr(col.Header()), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	addPage := func() {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(usable, 10, tr(opts.Title), "", 1, "L", false, 0, "")
		header()
	}

	addPage()

	for _, inc := range incidents {
		if pdf.GetY()+pdfRowH > pageH-pdfMargin {
			addPage()
		}
		r, g, b := inc.Color().RGB()
		pdf.SetFillColor(r, g, b)
		for i, col := range opts.Columns {
			pdf.CellFormat(widths[i], pdfRowH, tr(cellValue(inc, col)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return goerr.Wrap(err, "failed to write pdf")
	}
	return nil
}
