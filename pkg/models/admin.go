// Package models contains plain data records for the escotech API.
// Records carry no behavior beyond category checks; hashing lives in
// pkg/auth and persistence in pkg/repositories.
package models

import "time"

// Admin is the single privileged identity type permitted to mutate content.
// The password column holds a bcrypt hash and is never serialized.
type Admin struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
