package models

import "time"

// Profile represents a user profile. The ID is the identifier issued by the
// auth provider, not generated by the profiles table.
type Profile struct {
	ID             string     `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	Gender         string     `json:"gender" db:"gender"`
	Role           string     `json:"role" db:"role"`
	SemesterNumber int        `json:"semesterNumber" db:"semester_number"`
	AcademicYear   *string    `json:"academicYear,omitempty" db:"academic_year"`
	Avatar         *string    `json:"avatar,omitempty" db:"avatar"`
	Bio            *string    `json:"bio,omitempty" db:"bio"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	Status         *string    `json:"status,omitempty" db:"status"`
	TutorID        *string    `json:"tutorId,omitempty" db:"tutor_id"`
	CreatedAt      *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      *time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName returns the profile's display name.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ProfileUpdate carries the fields of a partial profile update. Nil fields
// are left untouched by the repository.
type ProfileUpdate struct {
	Email          *string
	FirstName      *string
	LastName       *string
	Gender         *string
	Role           *string
	SemesterNumber *int
	AcademicYear   *string
	Avatar         *string
	Bio            *string
	Phone          *string
	Status         *string
	TutorID        *string
	UpdatedAt      *time.Time
}
