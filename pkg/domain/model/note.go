package model

import "time"

// Note is a time-stamped free-text log line attached to an incident.
// Notes are removed together with their incident.
type Note struct {
	ID         int64
	IncidentID int64
	Body       string
	CreatedAt  time.Time
}

// Clone returns a copy of the note.
func (n *Note) Clone() *Note {
	v := *n
	return &v
}
