package models

import "time"

// Course represents a course in the catalog. SemesterNumber is a denormalized
// tag carried alongside the explicit semester-course join.
type Course struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	SemesterNumber int        `json:"semesterNumber" db:"semester_number"`
	CreatedAt      *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      *time.Time `json:"updatedAt" db:"updated_at"`
}

// CourseUpdate carries the fields of a partial course update.
type CourseUpdate struct {
	Name           *string
	SemesterNumber *int
	UpdatedAt      *time.Time
}
