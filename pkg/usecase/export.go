package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/export"
)

// RenderBoard queries incidents and streams the rendered document. Used by
// the HTTP surface where the destination is the response body.
func (uc *UseCases) RenderBoard(ctx context.Context, w io.Writer, format export.Format, q ListQuery, opts export.Options) error {
	incidents, err := uc.ListIncidents(ctx, q)
	if err != nil {
		return err
	}

	if err := export.Render(w, format, incidents, opts); err != nil {
		return goerr.Wrap(ErrExportFailed, "failed to render board",
			goerr.V("format", format), goerr.V("cause", err.Error()))
	}
	return nil
}

// ExportBoard queries incidents and writes the rendered document to path.
// The file appears atomically or not at all.
func (uc *UseCases) ExportBoard(ctx context.Context, path string, format export.Format, q ListQuery, opts export.Options) error {
	incidents, err := uc.ListIncidents(ctx, q)
	if err != nil {
		return err
	}

	if err := export.WriteFile(ctx, path, format, incidents, opts); err != nil {
		return goerr.Wrap(ErrExportFailed, "failed to export board",
			goerr.V("format", format), goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return nil
}
