package models

import "time"

// Project categories. The column carries a CHECK constraint with the
// same two values.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
)

// ValidCategory reports whether s is one of the two project categories.
func ValidCategory(s string) bool {
	return s == CategoryResidential || s == CategoryCommercial
}

// Project is a portfolio entry on the marketing site. Image is a durable
// URL at the media provider and is always non-empty after create.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
