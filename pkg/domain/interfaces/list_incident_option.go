package interfaces

import (
	"time"

	"github.com/raceops/trackdesk/pkg/domain/types"
)

// ListIncidentOption is a functional option for filtering and ordering incidents in List
type ListIncidentOption func(*listIncidentConfig)

type listIncidentConfig struct {
	category  *types.Category
	status    *types.Status
	since     *time.Time
	until     *time.Time
	sortKey   types.SortKey
	sortOrder types.SortOrder
}

// WithCategory filters incidents by category
func WithCategory(category types.Category) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.category = &category
	}
}

// WithStatus filters incidents by status
func WithStatus(status types.Status) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.status = &status
	}
}

// WithCreatedSince keeps incidents created at or after t
func WithCreatedSince(t time.Time) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.since = &t
	}
}

// WithCreatedUntil keeps incidents created at or before t
func WithCreatedUntil(t time.Time) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.until = &t
	}
}

// WithSort orders the result by the given key and order
func WithSort(key types.SortKey, order types.SortOrder) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.sortKey = key
		c.sortOrder = order.Normalize()
	}
}

// BuildListIncidentConfig builds a listIncidentConfig from options
func BuildListIncidentConfig(opts ...ListIncidentOption) *listIncidentConfig {
	cfg := &listIncidentConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Category returns the category filter value, or nil if not set
func (c *listIncidentConfig) Category() *types.Category {
	return c.category
}

// Status returns the status filter value, or nil if not set
func (c *listIncidentConfig) Status() *types.Status {
	return c.status
}

// Since returns the lower creation-time bound, or nil if not set
func (c *listIncidentConfig) Since() *time.Time {
	return c.since
}

// Until returns the upper creation-time bound, or nil if not set
func (c *listIncidentConfig) Until() *time.Time {
	return c.until
}

// SortKey returns the sort key, empty when default ordering applies
func (c *listIncidentConfig) SortKey() types.SortKey {
	return c.sortKey
}

// SortOrder returns the sort order, normalized to ascending by default
func (c *listIncidentConfig) SortOrder() types.SortOrder {
	return c.sortOrder.Normalize()
}
