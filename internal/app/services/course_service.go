package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetAllCourses(ctx context.Context, semesterNumber *int) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, update *models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// CreateCourse stores a new course and returns the stored row
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if strings.TrimSpace(course.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if course.SemesterNumber < 1 {
		return nil, fmt.Errorf("%w: semester number must be positive", apperrors.ErrValidationFailed)
	}

	course.CreatedAt = stampNow()
	course.UpdatedAt = course.CreatedAt
	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	return s.GetCourseByID(ctx, id)
}

// GetAllCourses retrieves courses, optionally filtered by semester number
func (s *courseServiceImpl) GetAllCourses(ctx context.Context, semesterNumber *int) ([]*models.Course, error) {
	return s.courseRepo.FindAll(ctx, semesterNumber)
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Course with ID %s not found", id))
	}
	return course, nil
}

// UpdateCourse applies a partial update and returns the fresh row
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, update *models.CourseUpdate) (*models.Course, error) {
	update.UpdatedAt = stampNow()
	if err := s.courseRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Course with ID %s not found", id))
		}
		return nil, err
	}
	return s.GetCourseByID(ctx, id)
}

// DeleteCourse removes a course by ID
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Course with ID %s not found", id))
		}
		return err
	}
	return nil
}
