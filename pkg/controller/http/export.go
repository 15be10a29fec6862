package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/export"
)

func (s *Server) exportBoard(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	opts := export.Options{
		Title: r.URL.Query().Get("title"),
	}
	if cols := r.URL.Query().Get("columns"); cols != "" {
		for _, c := range strings.Split(cols, ",") {
			col := export.Column(strings.TrimSpace(c))
			if !col.IsValid() {
				respondError(w, r, goerr.Wrap(export.ErrUnknownColumn, "column is not exportable", goerr.V("column", col)))
				return
			}
			opts.Columns = append(opts.Columns, col)
		}
	}

	// Render into memory first so a failed render still gets a proper
	// error status instead of a truncated download. Boards are small.
	var buf bytes.Buffer
	if err := s.uc.RenderBoard(r.Context(), &buf, format, q, opts); err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="incidents%s"`, format.Ext()))
	w.Write(buf.Bytes()) //nolint:errcheck // header already committed
}
