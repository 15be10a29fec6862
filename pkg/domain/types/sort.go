package types

import "fmt"

// SortKey selects the field used to order incident listings
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByCategory  SortKey = "category"
	SortByStatus    SortKey = "status"
)

// IsValid checks if the sort key is valid
func (k SortKey) IsValid() bool {
	switch k {
	case SortByCreatedAt, SortByUpdatedAt, SortByCategory, SortByStatus:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort key
func (k SortKey) String() string {
	return string(k)
}

// ParseSortKey parses a string into a SortKey
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("invalid sort key: %s", s)
	}
	return key, nil
}

// SortOrder selects ascending or descending ordering
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Normalize returns the order, treating empty as ascending.
func (o SortOrder) Normalize() SortOrder {
	if o == "" {
		return SortAsc
	}
	return o
}

// String returns the string representation of the sort order
func (o SortOrder) String() string {
	return string(o)
}

// ParseSortOrder parses a string into a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(s)
	if !order.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", s)
	}
	return order, nil
}
