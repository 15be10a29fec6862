package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/domain/types"
)

const incidentColumns = "id, category, location, units, disposition, status, created_at, updated_at, dispatched_at, arrived_at, resolved_at"

type incidentRepository struct {
	db *sql.DB
}

func newIncidentRepository(db *sql.DB) *incidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	now := time.Now().UTC()

	units, err := encodeUnits(inc.Units)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incidents (category, location, units, disposition, status, created_at, updated_at, dispatched_at, arrived_at, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inc.Category.String(),
		inc.Location,
		units,
		inc.Disposition,
		inc.Status.Normalize().String(),
		encodeTime(now),
		encodeTime(now),
		encodeTimePtr(inc.DispatchedAt),
		encodeTimePtr(inc.ArrivedAt),
		encodeTimePtr(inc.ResolvedAt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert incident")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read inserted incident id")
	}

	return r.Get(ctx, id)
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+incidentColumns+" FROM incidents WHERE id = ?", id)

	inc, err := scanIncident(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}
	return inc, nil
}

func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	cfg := interfaces.BuildListIncidentConfig(opts...)

	var where []string
	var args []any
	if c := cfg.Category(); c != nil {
		where = append(where, "category = ?")
		args = append(args, c.String())
	}
	if s := cfg.Status(); s != nil {
		where = append(where, "status = ?")
		args = append(args, s.Normalize().String())
	}
	if t := cfg.Since(); t != nil {
		where = append(where, "created_at >= ?")
		args = append(args, encodeTime(t.UTC()))
	}
	if t := cfg.Until(); t != nil {
		where = append(where, "created_at <= ?")
		args = append(args, encodeTime(t.UTC()))
	}

	query := "SELECT " + incidentColumns + " FROM incidents"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += orderClause(cfg.SortKey(), cfg.SortOrder())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	defer func() {
		_ = rows.Close()
	}()

	incidents := []*model.Incident{}
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan incident")
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate incidents")
	}

	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	units, err := encodeUnits(inc.Units)
	if err != nil {
		return nil, err
	}

	// created_at is deliberately absent: creation time is immutable.
	res, err := r.db.ExecContext(ctx,
		`UPDATE incidents
		 SET category = ?, location = ?, units = ?, disposition = ?, status = ?,
		     updated_at = ?, dispatched_at = ?, arrived_at = ?, resolved_at = ?
		 WHERE id = ?`,
		inc.Category.String(),
		inc.Location,
		units,
		inc.Disposition,
		inc.Status.Normalize().String(),
		encodeTime(time.Now().UTC()),
		encodeTimePtr(inc.DispatchedAt),
		encodeTimePtr(inc.ArrivedAt),
		encodeTimePtr(inc.ResolvedAt),
		inc.ID,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", inc.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read update result", goerr.V("id", inc.ID))
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", inc.ID))
	}

	return r.Get(ctx, inc.ID)
}

func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM incidents WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to read delete result", goerr.V("id", id))
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}
	return nil
}

// orderClause maps the sort key to its column. The id tie-break keeps equal
// key values in a deterministic order.
func orderClause(key types.SortKey, order types.SortOrder) string {
	column := ""
	switch key {
	case types.SortByCreatedAt:
		column = "created_at"
	case types.SortByUpdatedAt:
		column = "updated_at"
	case types.SortByCategory:
		column = "category"
	case types.SortByStatus:
		column = "status"
	}
	if column == "" {
		return " ORDER BY id ASC"
	}

	dir := "ASC"
	if order == types.SortDesc {
		dir = "DESC"
	}
	return " ORDER BY " + column + " " + dir + ", id ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*model.Incident, error) {
	var (
		inc        model.Incident
		category   string
		status     string
		units      string
		createdAt  string
		updatedAt  string
		dispatched sql.NullString
		arrived    sql.NullString
		resolved   sql.NullString
	)

	if err := row.Scan(&inc.ID, &category, &inc.Location, &units, &inc.Disposition,
		&status, &createdAt, &updatedAt, &dispatched, &arrived, &resolved); err != nil {
		return nil, err
	}

	inc.Category = types.Category(category)
	inc.Status = types.Status(status).Normalize()

	if err := json.Unmarshal([]byte(units), &inc.Units); err != nil {
		return nil, goerr.Wrap(err, "failed to decode units column", goerr.V("id", inc.ID))
	}
	if inc.Units == nil {
		inc.Units = []string{}
	}

	var err error
	if inc.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, goerr.Wrap(err, "invalid created_at", goerr.V("id", inc.ID))
	}
	if inc.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, goerr.Wrap(err, "invalid updated_at", goerr.V("id", inc.ID))
	}
	if inc.DispatchedAt, err = decodeTimePtr(dispatched); err != nil {
		return nil, goerr.Wrap(err, "invalid dispatched_at", goerr.V("id", inc.ID))
	}
	if inc.ArrivedAt, err = decodeTimePtr(arrived); err != nil {
		return nil, goerr.Wrap(err, "invalid arrived_at", goerr.V("id", inc.ID))
	}
	if inc.ResolvedAt, err = decodeTimePtr(resolved); err != nil {
		return nil, goerr.Wrap(err, "invalid resolved_at", goerr.V("id", inc.ID))
	}

	return &inc, nil
}

func encodeUnits(units []string) (string, error) {
	if units == nil {
		units = []string{}
	}
	raw, err := json.Marshal(units)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode units")
	}
	return string(raw), nil
}

// storedTimeFmt is RFC 3339 UTC with fixed-width nanoseconds. RFC3339Nano
// trims trailing fractional zeros, which breaks lexicographic comparison on
// the TEXT column ('.' sorts below 'Z'); the fixed width keeps string order
// identical to time order for range filters and ORDER BY.
const storedTimeFmt = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(storedTimeFmt)
}

func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func decodeTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := decodeTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
