package dto

// CreateProfileRequest represents the payload to create a user profile.
// The ID comes from the auth identity the profile belongs to.
type CreateProfileRequest struct {
	ID             string `json:"id" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Gender         string `json:"gender" binding:"required"`
	Role           string `json:"role,omitempty"`
	SemesterNumber int    `json:"semesterNumber" binding:"required,min=1"`
	AcademicYear   string `json:"academicYear,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status,omitempty"`
	TutorID        string `json:"tutorId,omitempty"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Role           *string `json:"role,omitempty"`
	SemesterNumber *int    `json:"semesterNumber,omitempty" binding:"omitempty,min=1"`
	AcademicYear   *string `json:"academicYear,omitempty"`
	Avatar         *string `json:"avatar,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Status         *string `json:"status,omitempty"`
	TutorID        *string `json:"tutorId,omitempty"`
}
