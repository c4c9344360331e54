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

// SemesterController handles semester catalog operations
type SemesterController struct {
	semesterService services.SemesterService
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService services.SemesterService) *SemesterController {
	return &SemesterController{semesterService: semesterService}
}

// CreateSemester handles semester creation
// @Summary Create a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester data"
// @Success 201 {object} dto.APIResponse{data=models.Semester} "Semester created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /semesters [post]
func (c *SemesterController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.semesterService.CreateSemester(ctx, &models.Semester{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// GetAllSemesters lists all semesters with their courses
// @Summary List semesters
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Semester} "Semesters retrieved"
// @Router /semesters [get]
func (c *SemesterController) GetAllSemesters(ctx *gin.Context) {
	semesters, err := c.semesterService.GetAllSemesters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semesters,
		Timestamp: time.Now(),
	})
}

// GetSemesterByID retrieves a semester with its courses
// @Summary Get a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=models.Semester} "Semester retrieved"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [get]
func (c *SemesterController) GetSemesterByID(ctx *gin.Context) {
	semester, err := c.semesterService.GetSemesterByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// UpdateSemester applies a partial update
// @Summary Update a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Param request body dto.UpdateSemesterRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Semester} "Semester updated"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [patch]
func (c *SemesterController) UpdateSemester(ctx *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.semesterService.UpdateSemester(ctx, ctx.Param("id"), &models.SemesterUpdate{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// DeleteSemester removes a semester
// @Summary Delete a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Semester deleted"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [delete]
func (c *SemesterController) DeleteSemester(ctx *gin.Context) {
	if err := c.semesterService.DeleteSemester(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Semester deleted"},
		Timestamp: time.Now(),
	})
}

// AddCourse links a course to a semester
// @Summary Link a course to a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Param request body dto.AddCourseToSemesterRequest true "Course to link"
// @Success 200 {object} dto.APIResponse{data=models.Semester} "Course linked"
// @Failure 404 {object} dto.ErrorResponse "Semester or course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already linked"
// @Router /semesters/{id}/courses [post]
func (c *SemesterController) AddCourse(ctx *gin.Context) {
	var req dto.AddCourseToSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid link data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.semesterService.AddCourseToSemester(ctx, ctx.Param("id"), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// RemoveCourse unlinks a course from a semester
// @Summary Unlink a course from a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Semester} "Course unlinked"
// @Failure 404 {object} dto.ErrorResponse "Semester not found or course not linked"
// @Router /semesters/{id}/courses/{courseId} [delete]
func (c *SemesterController) RemoveCourse(ctx *gin.Context) {
	semester, err := c.semesterService.RemoveCourseFromSemester(ctx, ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// GetCourses lists the courses linked to a semester
// @Summary List a semester's courses
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id}/courses [get]
func (c *SemesterController) GetCourses(ctx *gin.Context) {
	courses, err := c.semesterService.GetSemesterCourses(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}
