package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrBadSchema is returned when the database file exists but does not carry
// the expected incident schema (or is not a SQLite database at all).
var ErrBadSchema = errors.New("database file has unexpected schema")

const schema = `
CREATE TABLE IF NOT EXISTS incidents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	location TEXT NOT NULL,
	units TEXT NOT NULL DEFAULT '[]',
	disposition TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'open',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	dispatched_at TEXT,
	arrived_at TEXT,
	resolved_at TEXT
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	incident_id INTEGER NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(incident_id) REFERENCES incidents(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_incidents_status ON incidents(status);
CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents(created_at);
CREATE INDEX IF NOT EXISTS idx_notes_incident_id ON notes(incident_id);
`

// SQLite is the durable repository backed by a local database file.
// The file is created with the full schema on first use; opening a file that
// is not a database of the expected schema fails with ErrBadSchema.
type SQLite struct {
	db       *sql.DB
	incident *incidentRepository
	note     *noteRepository
}

var _ interfaces.Repository = &SQLite{}

func New(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", path))
	}

	// Single writer: the process owns the file for its lifetime and every
	// mutation must be committed before the call returns.
	db.SetMaxOpenConns(1)

	// A file that is not a SQLite database fails on the first statement, so
	// the pragmas double as the "is this our database" probe.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(ErrBadSchema, "failed to enable foreign keys",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(ErrBadSchema, "failed to set busy timeout",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	// A pre-existing incidents table is verified before any statement that
	// could write, so a foreign database is rejected untouched.
	existing, err := tableExists(ctx, db, "incidents")
	if err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "cannot inspect database", goerr.V("path", path))
	}
	if existing {
		if err := verifySchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "schema verification failed", goerr.V("path", path))
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(ErrBadSchema, "failed to initialize schema",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	if !existing {
		if err := verifySchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "schema verification failed", goerr.V("path", path))
		}
	}

	return &SQLite{
		db:       db,
		incident: newIncidentRepository(db),
		note:     newNoteRepository(db),
	}, nil
}

// tableExists reports whether a table of the given name is present. It is
// also the first statement that reads the file, so a non-database file fails
// here with ErrBadSchema.
func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(ErrBadSchema, "cannot read database catalog", goerr.V("cause", err.Error()))
	}
	return true, nil
}

// verifySchema checks that the incidents table carries every expected column.
// A pre-existing file with a foreign table layout is rejected rather than
// silently written to.
func verifySchema(ctx context.Context, db *sql.DB) error {
	required := []string{
		"id", "category", "location", "units", "disposition", "status",
		"created_at", "updated_at", "dispatched_at", "arrived_at", "resolved_at",
	}

	rows, err := db.QueryContext(ctx, "PRAGMA table_info(incidents)")
	if err != nil {
		return goerr.Wrap(ErrBadSchema, "cannot inspect incidents table", goerr.V("cause", err.Error()))
	}
	defer func() {
		_ = rows.Close()
	}()

	columns := map[string]bool{}
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dfltValue, &primaryKey); err != nil {
			return goerr.Wrap(err, "failed to scan table info")
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return goerr.Wrap(err, "failed to read table info")
	}

	for _, col := range required {
		if !columns[col] {
			return goerr.Wrap(ErrBadSchema, "incidents table is missing a column", goerr.V("column", col))
		}
	}
	return nil
}

func (s *SQLite) Incident() interfaces.IncidentRepository {
	return s.incident
}

func (s *SQLite) Note() interfaces.NoteRepository {
	return s.note
}

func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}
