package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
	"github.com/raceops/trackdesk/pkg/export"
	"github.com/xuri/excelize/v2"
)

func sampleIncidents(n int) []*model.Incident {
	base := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)
	incidents := make([]*model.Incident, 0, n)
	for i := 0; i < n; i++ {
		inc := &model.Incident{
			ID:        int64(i + 1),
			Category:  types.CategoryMechanical,
			Location:  "Turn 5",
			Units:     []string{"Safety 1", "Wrecker 2"},
			Status:    types.StatusOpen,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 1 {
			resolved := inc.CreatedAt.Add(20 * time.Minute)
			inc.Status = types.StatusCompleted
			inc.ResolvedAt = &resolved
		}
		incidents = append(incidents, inc)
	}
	return incidents
}

func TestRenderCSV_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		incidents := sampleIncidents(n)

		var buf bytes.Buffer
		gt.NoError(t, export.Render(&buf, export.FormatCSV, incidents, export.Options{})).Required()

		records, err := csv.NewReader(&buf).ReadAll()
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(n + 1) // header + rows

		gt.Array(t, records[0]).Equal([]string{"ID", "Type", "Location", "Unit(s)", "Reported", "Resolved", "Status"})
		for i, inc := range incidents {
			row := records[i+1]
			gt.Value(t, row[1]).Equal(inc.Category.String())
			gt.Value(t, row[2]).Equal(inc.Location)
			gt.Value(t, row[3]).Equal("Safety 1, Wrecker 2")
			gt.Value(t, row[6]).Equal(inc.Status.String())
		}
	}
}

func TestRenderXLSX_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		incidents := sampleIncidents(n)

		var buf bytes.Buffer
		gt.NoError(t, export.Render(&buf, export.FormatXLSX, incidents, export.Options{})).Required()

		f, err := excelize.OpenReader(&buf)
		gt.NoError(t, err).Required()

		rows, err := f.GetRows("Incidents")
		gt.NoError(t, err).Required()
		gt.NoError(t, f.Close())

		gt.Array(t, rows).Length(n + 1)
		gt.Value(t, rows[0][0]).Equal("ID")
		for i, inc := range incidents {
			gt.Value(t, rows[i+1][1]).Equal(inc.Category.String())
			gt.Value(t, rows[i+1][2]).Equal(inc.Location)
			gt.Value(t, rows[i+1][6]).Equal(inc.Status.String())
		}
	}
}

func TestRenderHTML_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		incidents := sampleIncidents(n)

		var buf bytes.Buffer
		gt.NoError(t, export.Render(&buf, export.FormatHTML, incidents, export.Options{})).Required()
		doc := buf.String()

		gt.Number(t, strings.Count(doc, "<th>")).Equal(7)
		gt.Number(t, strings.Count(doc, "<tr class=")).Equal(n)
		for _, inc := range incidents {
			gt.Bool(t, strings.Contains(doc, "<td>"+inc.Location+"</td>")).True()
		}
	}
}

func TestRenderHTML_EscapesFields(t *testing.T) {
	incidents := sampleIncidents(1)
	incidents[0].Location = `<script>alert("x")</script> & Turn 1`

	var buf bytes.Buffer
	gt.NoError(t, export.Render(&buf, export.FormatHTML, incidents, export.Options{})).Required()
	doc := buf.String()

	gt.Bool(t, strings.Contains(doc, "<script>alert")).False()
	gt.Bool(t, strings.Contains(doc, "&lt;script&gt;")).True()
	gt.Bool(t, strings.Contains(doc, "&amp; Turn 1")).True()
}

func TestRenderHTML_RowColors(t *testing.T) {
	incidents := sampleIncidents(2) // first open, second completed

	var buf bytes.Buffer
	gt.NoError(t, export.Render(&buf, export.FormatHTML, incidents, export.Options{})).Required()
	doc := buf.String()

	gt.Bool(t, strings.Contains(doc, `<tr class="attention">`)).True()
	gt.Bool(t, strings.Contains(doc, `<tr class="clear">`)).True()
	gt.Bool(t, strings.Contains(doc, types.ColorAttention.Hex())).True()
	gt.Bool(t, strings.Contains(doc, types.ColorClear.Hex())).True()
}

func TestRenderPDF(t *testing.T) {
	for _, n := range []int{0, 1, 60} { // 60 rows spill onto a second page
		incidents := sampleIncidents(n)

		var buf bytes.Buffer
		gt.NoError(t, export.Render(&buf, export.FormatPDF, incidents, export.Options{})).Required()
		gt.Bool(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF"))).True()
	}
}

func TestRender_ColumnSelection(t *testing.T) {
	incidents := sampleIncidents(1)
	incidents[0].Disposition = "towed to paddock"

	var buf bytes.Buffer
	opts := export.Options{Columns: []export.Column{export.ColumnID, export.ColumnDisposition}}
	gt.NoError(t, export.Render(&buf, export.FormatCSV, incidents, opts)).Required()

	records, err := csv.NewReader(&buf).ReadAll()
	gt.NoError(t, err).Required()
	gt.Array(t, records[0]).Equal([]string{"ID", "Disposition"})
	gt.Value(t, records[1][1]).Equal("towed to paddock")
}

func TestRender_UnknownColumn(t *testing.T) {
	var buf bytes.Buffer
	opts := export.Options{Columns: []export.Column{"velocity"}}
	err := export.Render(&buf, export.FormatCSV, sampleIncidents(1), opts)
	gt.Value(t, err).NotNil()
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the document atomically", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "board.csv")

		gt.NoError(t, export.WriteFile(ctx, path, export.FormatCSV, sampleIncidents(3), export.Options{})).Required()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.Bool(t, len(data) > 0).True()

		// No temp files left behind
		entries, err := os.ReadDir(dir)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
	})

	t.Run("failed render leaves no output file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "board.csv")

		opts := export.Options{Columns: []export.Column{"velocity"}}
		err := export.WriteFile(ctx, path, export.FormatCSV, sampleIncidents(3), opts)
		gt.Value(t, err).NotNil()

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}

func TestParseFormat(t *testing.T) {
	for _, f := range export.AllFormats() {
		parsed, err := export.ParseFormat(f.String())
		gt.NoError(t, err).Required()
		gt.Value(t, parsed).Equal(f)
	}

	_, err := export.ParseFormat("docx")
	gt.Value(t, err).NotNil()
}
