package dto

// CreateAvailableTimeRequest represents one weekly time slot. Times use the
// 24h "HH:MM" form and dayOfWeek counts from Sunday as 0.
type CreateAvailableTimeRequest struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,timeofday"`
	EndTime   string `json:"endTime" binding:"required,timeofday"`
}

// UpdateAvailableTimeRequest represents a partial time slot update
type UpdateAvailableTimeRequest struct {
	DayOfWeek *int    `json:"dayOfWeek,omitempty" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime,omitempty" binding:"omitempty,timeofday"`
	EndTime   *string `json:"endTime,omitempty" binding:"omitempty,timeofday"`
}

// CreateTutoringSessionRequest represents the payload to create a tutoring
// session together with its initial weekly availability.
type CreateTutoringSessionRequest struct {
	TutorID           string                       `json:"tutorId" binding:"required"`
	CourseID          string                       `json:"courseId,omitempty"`
	Title             string                       `json:"title" binding:"required"`
	Description       string                       `json:"description,omitempty"`
	Price             float64                      `json:"price" binding:"min=0"`
	WhatTheyWillLearn []string                     `json:"whatTheyWillLearn,omitempty"`
	ImageURL          string                       `json:"imageUrl,omitempty"`
	AvailableTimes    []CreateAvailableTimeRequest `json:"availableTimes,omitempty"`
}

// UpdateTutoringSessionRequest represents a partial session update. When
// AvailableTimes is non-empty the stored slots are replaced wholesale.
type UpdateTutoringSessionRequest struct {
	CourseID          *string                      `json:"courseId,omitempty"`
	Title             *string                      `json:"title,omitempty"`
	Description       *string                      `json:"description,omitempty"`
	Price             *float64                     `json:"price,omitempty" binding:"omitempty,min=0"`
	WhatTheyWillLearn []string                     `json:"whatTheyWillLearn,omitempty"`
	ImageURL          *string                      `json:"imageUrl,omitempty"`
	AvailableTimes    []CreateAvailableTimeRequest `json:"availableTimes,omitempty"`
}

// AddMaterialRequest attaches a learning material to a session
type AddMaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type" binding:"required,oneof=document video link image code"`
	URL         string `json:"url" binding:"required"`
	Size        int64  `json:"size,omitempty"`
	UploadedBy  string `json:"uploadedBy" binding:"required"`
}

// UpdateMaterialRequest represents a partial material update
type UpdateMaterialRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=document video link image code"`
	URL         *string `json:"url,omitempty"`
	Size        *int64  `json:"size,omitempty"`
}

// AddReviewRequest attaches a student review to a session
type AddReviewRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}

// UpdateReviewRequest represents a partial review update
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
	Likes   *int    `json:"likes,omitempty" binding:"omitempty,min=0"`
}
