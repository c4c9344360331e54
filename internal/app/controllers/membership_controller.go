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

// MembershipController handles membership operations
type MembershipController struct {
	membershipService services.MembershipService
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService services.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

// CreateMembership handles a membership purchase
// @Summary Create a membership
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMembershipRequest true "Membership data"
// @Success 201 {object} dto.APIResponse{data=models.Membership} "Membership created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /memberships [post]
func (c *MembershipController) CreateMembership(ctx *gin.Context) {
	var req dto.CreateMembershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid membership data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	membership := &models.Membership{
		UserID: req.UserID,
		Type:   models.MembershipType(req.Type),
		Status: models.MembershipStatus(req.Status),
	}
	if req.PaymentProof != "" {
		membership.PaymentProof = &req.PaymentProof
	}

	created, err := c.membershipService.CreateMembership(ctx, membership)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetAllMemberships lists all memberships
// @Summary List memberships
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Membership} "Memberships retrieved"
// @Router /memberships [get]
func (c *MembershipController) GetAllMemberships(ctx *gin.Context) {
	memberships, err := c.membershipService.GetAllMemberships(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      memberships,
		Timestamp: time.Now(),
	})
}

// GetMembershipByID retrieves a membership by ID
// @Summary Get a membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} dto.APIResponse{data=models.Membership} "Membership retrieved"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /memberships/{id} [get]
func (c *MembershipController) GetMembershipByID(ctx *gin.Context) {
	membership, err := c.membershipService.GetMembershipByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      membership,
		Timestamp: time.Now(),
	})
}

// GetMembershipsByUser lists a user's memberships, newest first
// @Summary List a user's memberships
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Membership} "Memberships retrieved"
// @Router /memberships/user/{userId} [get]
func (c *MembershipController) GetMembershipsByUser(ctx *gin.Context) {
	memberships, err := c.membershipService.GetMembershipsByUser(ctx, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      memberships,
		Timestamp: time.Now(),
	})
}

// GetCurrentMembership retrieves a user's most recent membership
// @Summary Get a user's current membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.Membership} "Membership retrieved"
// @Failure 404 {object} dto.ErrorResponse "User has no membership"
// @Router /memberships/user/{userId}/current [get]
func (c *MembershipController) GetCurrentMembership(ctx *gin.Context) {
	membership, err := c.membershipService.GetCurrentMembership(ctx, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      membership,
		Timestamp: time.Now(),
	})
}

// UpdateMembershipStatus changes the review status
// @Summary Update a membership's status
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param request body dto.UpdateMembershipStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Membership} "Membership updated"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /memberships/{id}/status [patch]
func (c *MembershipController) UpdateMembershipStatus(ctx *gin.Context) {
	var req dto.UpdateMembershipStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.membershipService.UpdateMembershipStatus(ctx, ctx.Param("id"), models.MembershipStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteMembership removes a membership
// @Summary Delete a membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Membership deleted"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /memberships/{id} [delete]
func (c *MembershipController) DeleteMembership(ctx *gin.Context) {
	if err := c.membershipService.DeleteMembership(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Membership deleted"},
		Timestamp: time.Now(),
	})
}
