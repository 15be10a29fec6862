package memory

import (
	"github.com/raceops/trackdesk/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	incident *incidentRepository
	note     *noteRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	incidentRepo := newIncidentRepository()
	noteRepo := newNoteRepository(incidentRepo)

	return &Memory{
		incident: incidentRepo,
		note:     noteRepo,
	}
}

func (m *Memory) Incident() interfaces.IncidentRepository {
	return m.incident
}

func (m *Memory) Note() interfaces.NoteRepository {
	return m.note
}

func (m *Memory) Close() error {
	return nil
}
