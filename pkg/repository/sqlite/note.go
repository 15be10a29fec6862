package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/model"
)

type noteRepository struct {
	db *sql.DB
}

func newNoteRepository(db *sql.DB) *noteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Add(ctx context.Context, note *model.Note) (*model.Note, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM incidents WHERE id = ?", note.IncidentID).Scan(&exists)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check incident", goerr.V("incident_id", note.IncidentID))
	}
	if exists == 0 {
		return nil, goerr.Wrap(ErrNotFound, "cannot add note to missing incident",
			goerr.V("incident_id", note.IncidentID))
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (incident_id, body, created_at) VALUES (?, ?, ?)",
		note.IncidentID, note.Body, encodeTime(now))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert note", goerr.V("incident_id", note.IncidentID))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read inserted note id")
	}

	return &model.Note{
		ID:         id,
		IncidentID: note.IncidentID,
		Body:       note.Body,
		CreatedAt:  now,
	}, nil
}

func (r *noteRepository) ListByIncident(ctx context.Context, incidentID int64) ([]*model.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, incident_id, body, created_at FROM notes WHERE incident_id = ? ORDER BY created_at ASC, id ASC",
		incidentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V("incident_id", incidentID))
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []*model.Note{}
	for rows.Next() {
		var (
			n         model.Note
			createdAt string
		)
		if err := rows.Scan(&n.ID, &n.IncidentID, &n.Body, &createdAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan note")
		}
		if n.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, goerr.Wrap(err, "invalid note created_at", goerr.V("id", n.ID))
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate notes")
	}

	return notes, nil
}
