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

// ProfileController handles user profile operations
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateProfile handles profile creation
// @Summary Create a profile
// @Description Creates a profile for an existing auth identity
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfileRequest true "Profile data"
// @Success 201 {object} dto.APIResponse{data=models.Profile} "Profile created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /profiles [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile := &models.Profile{
		ID:             req.ID,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		Role:           req.Role,
		SemesterNumber: req.SemesterNumber,
		AcademicYear:   optional(req.AcademicYear),
		Bio:            optional(req.Bio),
		Phone:          optional(req.Phone),
		Status:         optional(req.Status),
		TutorID:        optional(req.TutorID),
	}

	created, err := c.profileService.CreateProfile(ctx, profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetAllProfiles lists all profiles
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Profile} "Profiles retrieved"
// @Router /profiles [get]
func (c *ProfileController) GetAllProfiles(ctx *gin.Context) {
	profiles, err := c.profileService.GetAllProfiles(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profiles,
		Timestamp: time.Now(),
	})
}

// GetProfileByID retrieves a profile by ID
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile retrieved"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [get]
func (c *ProfileController) GetProfileByID(ctx *gin.Context) {
	profile, err := c.profileService.GetProfileByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// GetProfileByEmail retrieves a profile by email
// @Summary Get a profile by email
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param email path string true "Profile email"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile retrieved"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/email/{email} [get]
func (c *ProfileController) GetProfileByEmail(ctx *gin.Context) {
	profile, err := c.profileService.GetProfileByEmail(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// UpdateProfile applies a partial update
// @Summary Update a profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	update := &models.ProfileUpdate{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		Role:           req.Role,
		SemesterNumber: req.SemesterNumber,
		AcademicYear:   req.AcademicYear,
		Avatar:         req.Avatar,
		Bio:            req.Bio,
		Phone:          req.Phone,
		Status:         req.Status,
		TutorID:        req.TutorID,
	}

	updated, err := c.profileService.UpdateProfile(ctx, ctx.Param("id"), update)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteProfile removes a profile
// @Summary Delete a profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Profile deleted"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [delete]
func (c *ProfileController) DeleteProfile(ctx *gin.Context) {
	if err := c.profileService.DeleteProfile(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Profile deleted"},
		Timestamp: time.Now(),
	})
}
