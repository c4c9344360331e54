package dto

// CreateSemesterRequest represents the payload to create a semester
type CreateSemesterRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateSemesterRequest represents a partial semester update
type UpdateSemesterRequest struct {
	Name *string `json:"name,omitempty"`
}

// AddCourseToSemesterRequest links an existing course to a semester
type AddCourseToSemesterRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}
