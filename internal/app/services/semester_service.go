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

// SemesterService defines the interface for semester catalog operations
type SemesterService interface {
	CreateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error)
	GetAllSemesters(ctx context.Context) ([]*models.Semester, error)
	GetSemesterByID(ctx context.Context, id string) (*models.Semester, error)
	UpdateSemester(ctx context.Context, id string, update *models.SemesterUpdate) (*models.Semester, error)
	DeleteSemester(ctx context.Context, id string) error
	AddCourseToSemester(ctx context.Context, semesterID, courseID string) (*models.Semester, error)
	RemoveCourseFromSemester(ctx context.Context, semesterID, courseID string) (*models.Semester, error)
	GetSemesterCourses(ctx context.Context, semesterID string) ([]*models.Course, error)
}

type semesterServiceImpl struct {
	semesterRepo repositories.SemesterRepository
	courseRepo   repositories.CourseRepository
}

// NewSemesterService creates a new semester service instance
func NewSemesterService(semesterRepo repositories.SemesterRepository, courseRepo repositories.CourseRepository) SemesterService {
	return &semesterServiceImpl{
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
	}
}

// CreateSemester stores a new semester and returns the stored row
func (s *semesterServiceImpl) CreateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	if strings.TrimSpace(semester.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	semester.CreatedAt = stampNow()
	semester.UpdatedAt = semester.CreatedAt
	id, err := s.semesterRepo.Create(ctx, semester)
	if err != nil {
		return nil, err
	}
	return s.GetSemesterByID(ctx, id)
}

// GetAllSemesters retrieves all semesters with their courses
func (s *semesterServiceImpl) GetAllSemesters(ctx context.Context) ([]*models.Semester, error) {
	return s.semesterRepo.FindAll(ctx)
}

// GetSemesterByID retrieves a semester with its courses
func (s *semesterServiceImpl) GetSemesterByID(ctx context.Context, id string) (*models.Semester, error) {
	semester, err := s.semesterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Semester with ID %s not found", id))
	}
	return semester, nil
}

// UpdateSemester applies a partial update and returns the fresh row
func (s *semesterServiceImpl) UpdateSemester(ctx context.Context, id string, update *models.SemesterUpdate) (*models.Semester, error) {
	update.UpdatedAt = stampNow()
	if err := s.semesterRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Semester with ID %s not found", id))
		}
		return nil, err
	}
	return s.GetSemesterByID(ctx, id)
}

// DeleteSemester removes a semester by ID
func (s *semesterServiceImpl) DeleteSemester(ctx context.Context, id string) error {
	if err := s.semesterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Semester with ID %s not found", id))
		}
		return err
	}
	return nil
}

// AddCourseToSemester links a course to a semester and returns the updated
// semester. Both sides must exist.
func (s *semesterServiceImpl) AddCourseToSemester(ctx context.Context, semesterID, courseID string) (*models.Semester, error) {
	if _, err := s.GetSemesterByID(ctx, semesterID); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Course with ID %s not found", courseID))
	}

	if err := s.semesterRepo.AddCourse(ctx, semesterID, courseID); err != nil {
		return nil, err
	}
	return s.GetSemesterByID(ctx, semesterID)
}

// RemoveCourseFromSemester unlinks a course and returns the updated semester
func (s *semesterServiceImpl) RemoveCourseFromSemester(ctx context.Context, semesterID, courseID string) (*models.Semester, error) {
	if _, err := s.GetSemesterByID(ctx, semesterID); err != nil {
		return nil, err
	}

	if err := s.semesterRepo.RemoveCourse(ctx, semesterID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(
				fmt.Sprintf("Course with ID %s is not linked to semester %s", courseID, semesterID))
		}
		return nil, err
	}
	return s.GetSemesterByID(ctx, semesterID)
}

// GetSemesterCourses retrieves the courses linked to a semester
func (s *semesterServiceImpl) GetSemesterCourses(ctx context.Context, semesterID string) ([]*models.Course, error) {
	if _, err := s.GetSemesterByID(ctx, semesterID); err != nil {
		return nil, err
	}
	return s.semesterRepo.ListCourses(ctx, semesterID)
}
