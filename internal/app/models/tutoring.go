package models

import "time"

// TutoringSession is the aggregate root for a tutor's offering together with
// its owned collections. The nested rows are fetched and written per item;
// there is no transaction tying them to the session row.
type TutoringSession struct {
	ID                string                   `json:"id" db:"id"`
	TutorID           string                   `json:"tutorId" db:"tutor_id"`
	CourseID          *string                  `json:"courseId,omitempty" db:"course_id"`
	Title             string                   `json:"title" db:"title"`
	Description       *string                  `json:"description,omitempty" db:"description"`
	Price             float64                  `json:"price" db:"price"`
	WhatTheyWillLearn []string                 `json:"whatTheyWillLearn" db:"what_they_will_learn"`
	ImageURL          *string                  `json:"imageUrl,omitempty" db:"image_url"`
	Materials         []*TutoringMaterial      `json:"materials"`
	Reviews           []*TutoringReview        `json:"reviews"`
	AvailableTimes    []*TutoringAvailableTime `json:"availableTimes"`
	CreatedAt         *time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt         *time.Time               `json:"updatedAt" db:"updated_at"`
}

// TutoringSessionUpdate carries the fields of a partial session update.
// Nested collections are not touched through it.
type TutoringSessionUpdate struct {
	CourseID          *string
	Title             *string
	Description       *string
	Price             *float64
	WhatTheyWillLearn []string
	ImageURL          *string
	UpdatedAt         *time.Time
}

// TutoringMaterial is a study resource attached to a session.
type TutoringMaterial struct {
	ID          string       `json:"id" db:"id"`
	TutoringID  string       `json:"tutoringId" db:"tutoring_id"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description,omitempty" db:"description"`
	Type        MaterialType `json:"type" db:"type"`
	URL         string       `json:"url" db:"url"`
	Size        *int64       `json:"size,omitempty" db:"size"`
	UploadedBy  *string      `json:"uploadedBy,omitempty" db:"uploaded_by"`
	CreatedAt   *time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time   `json:"updatedAt" db:"updated_at"`
}

// TutoringMaterialUpdate carries the fields of a partial material update.
type TutoringMaterialUpdate struct {
	Title       *string
	Description *string
	Type        *MaterialType
	URL         *string
	Size        *int64
	UpdatedAt   *time.Time
}

// TutoringReview is a student review of a session.
type TutoringReview struct {
	ID         string     `json:"id" db:"id"`
	TutoringID string     `json:"tutoringId" db:"tutoring_id"`
	StudentID  string     `json:"studentId" db:"student_id"`
	Rating     int        `json:"rating" db:"rating"`
	Comment    string     `json:"comment" db:"comment"`
	Likes      int        `json:"likes" db:"likes"`
	CreatedAt  *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt" db:"updated_at"`
}

// TutoringReviewUpdate carries the fields of a partial review update.
type TutoringReviewUpdate struct {
	Rating    *int
	Comment   *string
	Likes     *int
	UpdatedAt *time.Time
}

// TutoringAvailableTime is a weekly time slot a tutor offers. Times are
// "HH:MM" strings validated at the DTO boundary.
type TutoringAvailableTime struct {
	ID         string     `json:"id" db:"id"`
	TutoringID string     `json:"tutoringId" db:"tutoring_id"`
	DayOfWeek  int        `json:"dayOfWeek" db:"day_of_week"`
	StartTime  string     `json:"startTime" db:"start_time"`
	EndTime    string     `json:"endTime" db:"end_time"`
	CreatedAt  *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt" db:"updated_at"`
}

// TutoringAvailableTimeUpdate carries the fields of a partial slot update.
type TutoringAvailableTimeUpdate struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	UpdatedAt *time.Time
}
