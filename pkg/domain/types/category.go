package types

import "fmt"

// Category represents the kind of on-track incident
type Category string

const (
	CategoryMedical    Category = "medical"
	CategoryMechanical Category = "mechanical"
	CategoryCollision  Category = "collision"
	CategoryFire       Category = "fire"
	CategoryOther      Category = "other"
)

// AllCategories returns all valid incident categories
func AllCategories() []Category {
	return []Category{
		CategoryMedical,
		CategoryMechanical,
		CategoryCollision,
		CategoryFire,
		CategoryOther,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryMedical,
		CategoryMechanical,
		CategoryCollision,
		CategoryFire,
		CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid incident category: %s", s)
	}
	return category, nil
}
