package export

import (
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
)

// boardTemplate renders a printable static board. The two row tints mirror
// the control room display: attention for open rows, clear for completed.
const boardTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Arial,sans-serif;margin:24px}
.board{border-collapse:collapse;width:100%}
.board th,.board td{border:1px solid #ddd;padding:8px;font-size:13px}
.board th{background:#f3f4f6;text-align:left}
tr.attention{background:{{.AttentionHex}}}
tr.clear{background:{{.ClearHex}}}
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<table class="board">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr class="{{.Class}}">{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`

var boardTmpl = template.Must(template.New("board").Parse(boardTemplate))

type htmlRow struct {
	Class string
	Cells []string
}

type htmlBoard struct {
	Title        string
	AttentionHex template.CSS
	ClearHex     template.CSS
	Headers      []string
	Rows         []htmlRow
}

func renderHTML(w io.Writer, incidents []*model.Incident, opts Options) error {
	board := htmlBoard{
		Title:        opts.Title,
		AttentionHex: template.CSS(types.ColorAttention.Hex()),
		ClearHex:     template.CSS(types.ColorClear.Hex()),
	}

	for _, col := range opts.Columns {
		board.Headers = append(board.Headers, col.Header())
	}

	for _, inc := range incidents {
		row := htmlRow{Class: inc.Color().String()}
		for _, col := range opts.Columns {
			row.Cells = append(row.Cells, cellValue(inc, col))
		}
		board.Rows = append(board.Rows, row)
	}

	if err := boardTmpl.Execute(w, board); err != nil {
		return goerr.Wrap(err, "failed to render html board")
	}
	return nil
}
