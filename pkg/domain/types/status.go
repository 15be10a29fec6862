package types

import "fmt"

// Status represents the lifecycle state of an incident
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
)

// AllStatuses returns all valid incident statuses
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusCompleted,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as StatusOpen.
func (s Status) Normalize() Status {
	if s == "" {
		return StatusOpen
	}
	return s
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid incident status: %s", s)
	}
	return status, nil
}

// ColorCategory is the display color bucket the board uses for an incident row.
type ColorCategory string

const (
	// ColorAttention marks open incidents that still need a response.
	ColorAttention ColorCategory = "attention"
	// ColorClear marks completed incidents.
	ColorClear ColorCategory = "clear"
)

// Color maps a status to its display color category. Pure and deterministic.
func (s Status) Color() ColorCategory {
	if s.Normalize() == StatusCompleted {
		return ColorClear
	}
	return ColorAttention
}

// Hex returns the background color used by HTML and PDF renderings.
func (c ColorCategory) Hex() string {
	if c == ColorClear {
		return "#e8f8ea"
	}
	return "#fff5f5"
}

// RGB returns the color as 8-bit components for renderers that take raw values.
func (c ColorCategory) RGB() (r, g, b int) {
	if c == ColorClear {
		return 0xe8, 0xf8, 0xea
	}
	return 0xff, 0xf5, 0xf5
}

// String returns the string representation of the color category
func (c ColorCategory) String() string {
	return string(c)
}
