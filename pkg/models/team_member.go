package models

import "time"

// TeamMember is a staff profile. Order controls display position; the
// CEO-flagged record sorts first regardless of Order. At most one CEO
// record is expected by the UI but not enforced here.
type TeamMember struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Order       int       `json:"order"`
	IsCEO       bool      `json:"isCEO"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
