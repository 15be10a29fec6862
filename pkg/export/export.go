package export

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/utils/safe"
)

// ErrUnknownFormat is returned for formats no renderer exists for
var ErrUnknownFormat = goerr.New("unknown export format")

// ErrUnknownColumn is returned when the column selection names an unknown column
var ErrUnknownColumn = goerr.New("unknown export column")

// Format identifies an export document format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
)

// AllFormats returns all supported export formats
func AllFormats() []Format {
	return []Format{FormatPDF, FormatXLSX, FormatHTML, FormatCSV}
}

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatXLSX, FormatHTML, FormatCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}

// Ext returns the file extension including the leading dot
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type for HTTP responses
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat parses a string into a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.IsValid() {
		return "", goerr.Wrap(ErrUnknownFormat, "unsupported format", goerr.V("format", s))
	}
	return f, nil
}

// Column identifies one exported field of an incident
type Column string

const (
	ColumnID          Column = "id"
	ColumnCategory    Column = "category"
	ColumnLocation    Column = "location"
	ColumnUnits       Column = "units"
	ColumnCreatedAt   Column = "created_at"
	ColumnDispatched  Column = "dispatched_at"
	ColumnArrived     Column = "arrived_at"
	ColumnResolvedAt  Column = "resolved_at"
	ColumnUpdatedAt   Column = "updated_at"
	ColumnDisposition Column = "disposition"
	ColumnStatus      Column = "status"
)

// DefaultColumns is the column order used when the caller does not pick one.
func DefaultColumns() []Column {
	return []Column{
		ColumnID, ColumnCategory, ColumnLocation, ColumnUnits,
		ColumnCreatedAt, ColumnResolvedAt, ColumnStatus,
	}
}

var columnHeaders = map[Column]string{
	ColumnID:          "ID",
	ColumnCategory:    "Type",
	ColumnLocation:    "Location",
	ColumnUnits:       "Unit(s)",
	ColumnCreatedAt:   "Reported",
	ColumnDispatched:  "Dispatched",
	ColumnArrived:     "Arrived",
	ColumnResolvedAt:  "Resolved",
	ColumnUpdatedAt:   "Updated",
	ColumnDisposition: "Disposition",
	ColumnStatus:      "Status",
}

// Header returns the human-readable column title
func (c Column) Header() string {
	if h, ok := columnHeaders[c]; ok {
		return h
	}
	return string(c)
}

// IsValid checks if the column is known
func (c Column) IsValid() bool {
	_, ok := columnHeaders[c]
	return ok
}

// Options controls document rendering. The zero value renders the default
// board: default columns, "Incident Board" title.
type Options struct {
	Title   string
	Columns []Column
}

func (o Options) normalize() (Options, error) {
	if o.Title == "" {
		o.Title = "Incident Board"
	}
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns()
	}
	for _, c := range o.Columns {
		if !c.IsValid() {
			return o, goerr.Wrap(ErrUnknownColumn, "column is not exportable", goerr.V("column", c))
		}
	}
	return o, nil
}

// displayTimeFmt matches the control room's 24h board clock.
const displayTimeFmt = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	return t.UTC().Format(displayTimeFmt)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// cellValue renders one incident field as its exported string form. All four
// renderers share this so documents agree on content.
func cellValue(inc *model.Incident, col Column) string {
	switch col {
	case ColumnID:
		return strconv.FormatInt(inc.ID, 10)
	case ColumnCategory:
		return inc.Category.String()
	case ColumnLocation:
		return inc.Location
	case ColumnUnits:
		return strings.Join(inc.Units, ", ")
	case ColumnCreatedAt:
		return formatTime(inc.CreatedAt)
	case ColumnDispatched:
		return formatTimePtr(inc.DispatchedAt)
	case ColumnArrived:
		return formatTimePtr(inc.ArrivedAt)
	case ColumnResolvedAt:
		return formatTimePtr(inc.ResolvedAt)
	case ColumnUpdatedAt:
		return formatTime(inc.UpdatedAt)
	case ColumnDisposition:
		return inc.Disposition
	case ColumnStatus:
		return inc.Status.Normalize().String()
	default:
		return ""
	}
}

// Render writes the incidents as a document of the given format. An empty
// incident list renders a header-only document.
func Render(w io.Writer, format Format, incidents []*model.Incident, opts Options) error {
	opts, err := opts.normalize()
	if err != nil {
		return err
	}

	switch format {
	case FormatPDF:
		return renderPDF(w, incidents, opts)
	case FormatXLSX:
		return renderXLSX(w, incidents, opts)
	case FormatHTML:
		return renderHTML(w, incidents, opts)
	case FormatCSV:
		return renderCSV(w, incidents, opts)
	default:
		return goerr.Wrap(ErrUnknownFormat, "cannot render", goerr.V("format", format))
	}
}

// WriteFile renders to a temporary file next to the destination and renames it
// into place, so a failed export never leaves a readable partial document.
func WriteFile(ctx context.Context, path string, format Format, incidents []*model.Incident, opts Options) error {
	tmp := path + ".tmp-" + uuid.NewString()

	f, err := os.Create(tmp)
	if err != nil {
		return goerr.Wrap(err, "failed to create export file", goerr.V("path", path))
	}

	if err := Render(f, format, incidents, opts); err != nil {
		safe.Close(ctx, f)
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to render export", goerr.V("path", path), goerr.V("format", format))
	}

	if err := f.Sync(); err != nil {
		safe.Close(ctx, f)
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to flush export file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to close export file", goerr.V("path", path))
	}

	if err := os.Rename(tmp, path); err != nil {
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to move export into place", goerr.V("path", path))
	}
	return nil
}
