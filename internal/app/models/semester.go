package models

import "time"

// Semester represents an academic semester. Courses holds the many-to-many
// relation, populated on reads.
type Semester struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Courses   []*Course  `json:"courses"`
	CreatedAt *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt" db:"updated_at"`
}

// SemesterUpdate carries the fields of a partial semester update.
type SemesterUpdate struct {
	Name      *string
	UpdatedAt *time.Time
}
