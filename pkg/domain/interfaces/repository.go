package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Incident() IncidentRepository
	Note() NoteRepository

	// Close releases the underlying store. Safe to call once at shutdown.
	Close() error
}
