package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/services"
	"github.com/rcastro/tutormatch/internal/middleware"
)

// TutoringController handles the tutoring session aggregate
type TutoringController struct {
	tutoringService services.TutoringService
}

// NewTutoringController creates a new TutoringController
func NewTutoringController(tutoringService services.TutoringService) *TutoringController {
	return &TutoringController{tutoringService: tutoringService}
}

// CreateSession creates a session with its initial availability
// @Summary Create a tutoring session
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTutoringSessionRequest true "Session data"
// @Success 201 {object} dto.APIResponse{data=models.TutoringSession} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /tutoring-sessions [post]
func (c *TutoringController) CreateSession(ctx *gin.Context) {
	var req dto.CreateTutoringSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.tutoringService.CreateSession(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetAllSessions lists all sessions with nested collections
// @Summary List tutoring sessions
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Sessions retrieved"
// @Router /tutoring-sessions [get]
func (c *TutoringController) GetAllSessions(ctx *gin.Context) {
	sessions, err := c.tutoringService.GetAllSessions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// GetSessionByID retrieves the full aggregate
// @Summary Get a tutoring session
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Session retrieved"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id} [get]
func (c *TutoringController) GetSessionByID(ctx *gin.Context) {
	session, err := c.tutoringService.GetSessionByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// GetSessionsByTutor lists a tutor's sessions
// @Summary List a tutor's sessions
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param tutorId path string true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Sessions retrieved"
// @Router /tutoring-sessions/tutor/{tutorId} [get]
func (c *TutoringController) GetSessionsByTutor(ctx *gin.Context) {
	sessions, err := c.tutoringService.GetSessionsByTutor(ctx, ctx.Param("tutorId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// GetSessionsByCourse lists a course's sessions
// @Summary List a course's sessions
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Sessions retrieved"
// @Router /tutoring-sessions/course/{courseId} [get]
func (c *TutoringController) GetSessionsByCourse(ctx *gin.Context) {
	sessions, err := c.tutoringService.GetSessionsByCourse(ctx, ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// UpdateSession applies a partial update. A non-empty availableTimes list
// replaces the stored slots wholesale; an empty or omitted list leaves them
// untouched.
// @Summary Update a tutoring session
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.UpdateTutoringSessionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Session updated"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id} [patch]
func (c *TutoringController) UpdateSession(ctx *gin.Context) {
	var req dto.UpdateTutoringSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id := ctx.Param("id")

	if len(req.AvailableTimes) > 0 {
		existing, err := c.tutoringService.GetAvailableTimes(ctx, id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		for _, slot := range existing {
			if err := c.tutoringService.DeleteAvailableTime(ctx, slot.ID); err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
		}
		for _, slot := range req.AvailableTimes {
			_, err := c.tutoringService.AddAvailableTime(ctx, id, &models.TutoringAvailableTime{
				DayOfWeek: slot.DayOfWeek,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
			if err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
		}
	}

	updated, err := c.tutoringService.UpdateSession(ctx, id, &models.TutoringSessionUpdate{
		CourseID:          req.CourseID,
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		WhatTheyWillLearn: req.WhatTheyWillLearn,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteSession removes the aggregate
// @Summary Delete a tutoring session
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Session deleted"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id} [delete]
func (c *TutoringController) DeleteSession(ctx *gin.Context) {
	if err := c.tutoringService.DeleteSession(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Tutoring session deleted"},
		Timestamp: time.Now(),
	})
}

// AddMaterial attaches a material to a session
// @Summary Add a material
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.AddMaterialRequest true "Material data"
// @Success 201 {object} dto.APIResponse{data=models.TutoringMaterial} "Material added"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/materials [post]
func (c *TutoringController) AddMaterial(ctx *gin.Context) {
	var req dto.AddMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material := &models.TutoringMaterial{
		Title:      req.Title,
		Type:       models.MaterialType(req.Type),
		URL:        req.URL,
		UploadedBy: &req.UploadedBy,
	}
	if req.Description != "" {
		material.Description = &req.Description
	}
	if req.Size > 0 {
		material.Size = &req.Size
	}

	created, err := c.tutoringService.AddMaterial(ctx, ctx.Param("id"), material)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetMaterials lists a session's materials
// @Summary List materials
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringMaterial} "Materials retrieved"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/materials [get]
func (c *TutoringController) GetMaterials(ctx *gin.Context) {
	materials, err := c.tutoringService.GetMaterials(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materials,
		Timestamp: time.Now(),
	})
}

// UpdateMaterial applies a partial update to a material
// @Summary Update a material
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param materialId path string true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.TutoringMaterial} "Material updated"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Router /tutoring-sessions/{id}/materials/{materialId} [patch]
func (c *TutoringController) UpdateMaterial(ctx *gin.Context) {
	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	update := &models.TutoringMaterialUpdate{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Size:        req.Size,
	}
	if req.Type != nil {
		t := models.MaterialType(*req.Type)
		update.Type = &t
	}

	updated, err := c.tutoringService.UpdateMaterial(ctx, ctx.Param("materialId"), update)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteMaterial removes a material
// @Summary Delete a material
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param materialId path string true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Material deleted"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Router /tutoring-sessions/{id}/materials/{materialId} [delete]
func (c *TutoringController) DeleteMaterial(ctx *gin.Context) {
	if err := c.tutoringService.DeleteMaterial(ctx, ctx.Param("materialId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Material deleted"},
		Timestamp: time.Now(),
	})
}

// AddReview attaches a review to a session
// @Summary Add a review
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.AddReviewRequest true "Review data"
// @Success 201 {object} dto.APIResponse{data=models.TutoringReview} "Review added"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/reviews [post]
func (c *TutoringController) AddReview(ctx *gin.Context) {
	var req dto.AddReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.tutoringService.AddReview(ctx, ctx.Param("id"), &models.TutoringReview{
		StudentID: req.StudentID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetReviews lists a session's reviews
// @Summary List reviews
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringReview} "Reviews retrieved"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/reviews [get]
func (c *TutoringController) GetReviews(ctx *gin.Context) {
	reviews, err := c.tutoringService.GetReviews(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      reviews,
		Timestamp: time.Now(),
	})
}

// UpdateReview applies a partial update to a review
// @Summary Update a review
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param reviewId path string true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.TutoringReview} "Review updated"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /tutoring-sessions/{id}/reviews/{reviewId} [patch]
func (c *TutoringController) UpdateReview(ctx *gin.Context) {
	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.tutoringService.UpdateReview(ctx, ctx.Param("reviewId"), &models.TutoringReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
		Likes:   req.Likes,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteReview removes a review
// @Summary Delete a review
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Review deleted"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /tutoring-sessions/{id}/reviews/{reviewId} [delete]
func (c *TutoringController) DeleteReview(ctx *gin.Context) {
	if err := c.tutoringService.DeleteReview(ctx, ctx.Param("reviewId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Review deleted"},
		Timestamp: time.Now(),
	})
}

// AddAvailableTime attaches a weekly slot to a session
// @Summary Add an available time
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.CreateAvailableTimeRequest true "Slot data"
// @Success 201 {object} dto.APIResponse{data=models.TutoringAvailableTime} "Slot added"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/available-times [post]
func (c *TutoringController) AddAvailableTime(ctx *gin.Context) {
	var req dto.CreateAvailableTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid slot data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.tutoringService.AddAvailableTime(ctx, ctx.Param("id"), &models.TutoringAvailableTime{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetAvailableTimes lists a session's weekly slots
// @Summary List available times
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringAvailableTime} "Slots retrieved"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /tutoring-sessions/{id}/available-times [get]
func (c *TutoringController) GetAvailableTimes(ctx *gin.Context) {
	times, err := c.tutoringService.GetAvailableTimes(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      times,
		Timestamp: time.Now(),
	})
}

// UpdateAvailableTime applies a partial update to a slot
// @Summary Update an available time
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param timeId path string true "Slot ID"
// @Param request body dto.UpdateAvailableTimeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.TutoringAvailableTime} "Slot updated"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /tutoring-sessions/{id}/available-times/{timeId} [patch]
func (c *TutoringController) UpdateAvailableTime(ctx *gin.Context) {
	var req dto.UpdateAvailableTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid slot data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.tutoringService.UpdateAvailableTime(ctx, ctx.Param("timeId"), &models.TutoringAvailableTimeUpdate{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteAvailableTime removes a slot
// @Summary Delete an available time
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param timeId path string true "Slot ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Slot deleted"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /tutoring-sessions/{id}/available-times/{timeId} [delete]
func (c *TutoringController) DeleteAvailableTime(ctx *gin.Context) {
	if err := c.tutoringService.DeleteAvailableTime(ctx, ctx.Param("timeId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Available time deleted"},
		Timestamp: time.Now(),
	})
}
