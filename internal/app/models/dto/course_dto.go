package dto

// CreateCourseRequest represents the payload to create a course
type CreateCourseRequest struct {
	Name           string `json:"name" binding:"required"`
	SemesterNumber int    `json:"semesterNumber" binding:"required,min=1"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Name           *string `json:"name,omitempty"`
	SemesterNumber *int    `json:"semesterNumber,omitempty" binding:"omitempty,min=1"`
}
