package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
	"github.com/rcastro/tutormatch/internal/pkg/validation"
)

// TutoringService defines the interface for the tutoring session aggregate
type TutoringService interface {
	CreateSession(ctx context.Context, req *dto.CreateTutoringSessionRequest) (*models.TutoringSession, error)
	GetAllSessions(ctx context.Context) ([]*models.TutoringSession, error)
	GetSessionsByTutor(ctx context.Context, tutorID string) ([]*models.TutoringSession, error)
	GetSessionsByCourse(ctx context.Context, courseID string) ([]*models.TutoringSession, error)
	GetSessionByID(ctx context.Context, id string) (*models.TutoringSession, error)
	UpdateSession(ctx context.Context, id string, update *models.TutoringSessionUpdate) (*models.TutoringSession, error)
	DeleteSession(ctx context.Context, id string) error

	AddMaterial(ctx context.Context, tutoringID string, material *models.TutoringMaterial) (*models.TutoringMaterial, error)
	GetMaterials(ctx context.Context, tutoringID string) ([]*models.TutoringMaterial, error)
	UpdateMaterial(ctx context.Context, id string, update *models.TutoringMaterialUpdate) (*models.TutoringMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	AddReview(ctx context.Context, tutoringID string, review *models.TutoringReview) (*models.TutoringReview, error)
	GetReviews(ctx context.Context, tutoringID string) ([]*models.TutoringReview, error)
	UpdateReview(ctx context.Context, id string, update *models.TutoringReviewUpdate) (*models.TutoringReview, error)
	DeleteReview(ctx context.Context, id string) error

	AddAvailableTime(ctx context.Context, tutoringID string, slot *models.TutoringAvailableTime) (*models.TutoringAvailableTime, error)
	GetAvailableTimes(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error)
	UpdateAvailableTime(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) (*models.TutoringAvailableTime, error)
	DeleteAvailableTime(ctx context.Context, id string) error
}

type tutoringServiceImpl struct {
	tutoringRepo repositories.TutoringRepository
}

// NewTutoringService creates a new tutoring service instance
func NewTutoringService(tutoringRepo repositories.TutoringRepository) TutoringService {
	return &tutoringServiceImpl{tutoringRepo: tutoringRepo}
}

func validateSlot(dayOfWeek int, startTime, endTime string) error {
	if dayOfWeek < validation.DayOfWeekMin || dayOfWeek > validation.DayOfWeekMax {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			apperrors.ErrValidationFailed, validation.DayOfWeekMin, validation.DayOfWeekMax)
	}
	if !validation.IsTimeOfDay(startTime) {
		return fmt.Errorf("%w: startTime must be HH:MM", apperrors.ErrValidationFailed)
	}
	if !validation.IsTimeOfDay(endTime) {
		return fmt.Errorf("%w: endTime must be HH:MM", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateSession inserts the session row, then the initial availability one
// slot at a time, and finally re-reads the whole aggregate. A slot that fails
// to insert surfaces the error to the caller; the session row and any slots
// already inserted stay behind, there is no rollback.
func (s *tutoringServiceImpl) CreateSession(ctx context.Context, req *dto.CreateTutoringSessionRequest) (*models.TutoringSession, error) {
	for _, slot := range req.AvailableTimes {
		if err := validateSlot(slot.DayOfWeek, slot.StartTime, slot.EndTime); err != nil {
			return nil, err
		}
	}

	session := &models.TutoringSession{
		TutorID:           req.TutorID,
		Title:             req.Title,
		Price:             req.Price,
		WhatTheyWillLearn: req.WhatTheyWillLearn,
	}
	if req.CourseID != "" {
		session.CourseID = &req.CourseID
	}
	if req.Description != "" {
		session.Description = &req.Description
	}
	if req.ImageURL != "" {
		session.ImageURL = &req.ImageURL
	}

	session.CreatedAt = stampNow()
	session.UpdatedAt = session.CreatedAt
	id, err := s.tutoringRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	for _, slot := range req.AvailableTimes {
		_, err := s.tutoringRepo.AddAvailableTime(ctx, &models.TutoringAvailableTime{
			TutoringID: id,
			DayOfWeek:  slot.DayOfWeek,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			CreatedAt:  session.CreatedAt,
			UpdatedAt:  session.UpdatedAt,
		})
		if err != nil {
			logger.Error().Err(err).Str("tutoringID", id).
				Msg("Failed to insert initial availability slot")
			return nil, err
		}
	}

	return s.GetSessionByID(ctx, id)
}

// GetAllSessions retrieves all sessions with their nested collections
func (s *tutoringServiceImpl) GetAllSessions(ctx context.Context) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.FindAllSessions(ctx)
}

// GetSessionsByTutor retrieves a tutor's sessions
func (s *tutoringServiceImpl) GetSessionsByTutor(ctx context.Context, tutorID string) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.FindSessionsByTutor(ctx, tutorID)
}

// GetSessionsByCourse retrieves a course's sessions
func (s *tutoringServiceImpl) GetSessionsByCourse(ctx context.Context, courseID string) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.FindSessionsByCourse(ctx, courseID)
}

// GetSessionByID retrieves the full aggregate
func (s *tutoringServiceImpl) GetSessionByID(ctx context.Context, id string) (*models.TutoringSession, error) {
	session, err := s.tutoringRepo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", id))
	}
	return session, nil
}

// UpdateSession applies a partial update to the session row and returns the
// fresh aggregate
func (s *tutoringServiceImpl) UpdateSession(ctx context.Context, id string, update *models.TutoringSessionUpdate) (*models.TutoringSession, error) {
	update.UpdatedAt = stampNow()
	if err := s.tutoringRepo.UpdateSession(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", id))
		}
		return nil, err
	}
	return s.GetSessionByID(ctx, id)
}

// DeleteSession removes the session and, through the schema, its collections
func (s *tutoringServiceImpl) DeleteSession(ctx context.Context, id string) error {
	if err := s.tutoringRepo.DeleteSession(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", id))
		}
		return err
	}
	return nil
}

func (s *tutoringServiceImpl) requireSession(ctx context.Context, tutoringID string) error {
	exists, err := s.tutoringRepo.SessionExists(ctx, tutoringID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", tutoringID))
	}
	return nil
}

// AddMaterial attaches a material to an existing session
func (s *tutoringServiceImpl) AddMaterial(ctx context.Context, tutoringID string, material *models.TutoringMaterial) (*models.TutoringMaterial, error) {
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}

	material.TutoringID = tutoringID
	material.CreatedAt = stampNow()
	material.UpdatedAt = material.CreatedAt
	id, err := s.tutoringRepo.AddMaterial(ctx, material)
	if err != nil {
		return nil, err
	}
	return s.getMaterialByID(ctx, id)
}

// GetMaterials retrieves the materials of a session
func (s *tutoringServiceImpl) GetMaterials(ctx context.Context, tutoringID string) ([]*models.TutoringMaterial, error) {
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}
	return s.tutoringRepo.FindMaterials(ctx, tutoringID)
}

func (s *tutoringServiceImpl) getMaterialByID(ctx context.Context, id string) (*models.TutoringMaterial, error) {
	material, err := s.tutoringRepo.FindMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Material with ID %s not found", id))
	}
	return material, nil
}

// UpdateMaterial applies a partial update and returns the fresh row
func (s *tutoringServiceImpl) UpdateMaterial(ctx context.Context, id string, update *models.TutoringMaterialUpdate) (*models.TutoringMaterial, error) {
	update.UpdatedAt = stampNow()
	if err := s.tutoringRepo.UpdateMaterial(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Material with ID %s not found", id))
		}
		return nil, err
	}
	return s.getMaterialByID(ctx, id)
}

// DeleteMaterial removes a material by ID
func (s *tutoringServiceImpl) DeleteMaterial(ctx context.Context, id string) error {
	if err := s.tutoringRepo.DeleteMaterial(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Material with ID %s not found", id))
		}
		return err
	}
	return nil
}

// AddReview attaches a review to an existing session
func (s *tutoringServiceImpl) AddReview(ctx context.Context, tutoringID string, review *models.TutoringReview) (*models.TutoringReview, error) {
	if review.Rating < validation.RatingMin || review.Rating > validation.RatingMax {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			apperrors.ErrValidationFailed, validation.RatingMin, validation.RatingMax)
	}
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}

	review.TutoringID = tutoringID
	review.CreatedAt = stampNow()
	review.UpdatedAt = review.CreatedAt
	id, err := s.tutoringRepo.AddReview(ctx, review)
	if err != nil {
		return nil, err
	}
	return s.getReviewByID(ctx, id)
}

// GetReviews retrieves the reviews of a session
func (s *tutoringServiceImpl) GetReviews(ctx context.Context, tutoringID string) ([]*models.TutoringReview, error) {
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}
	return s.tutoringRepo.FindReviews(ctx, tutoringID)
}

func (s *tutoringServiceImpl) getReviewByID(ctx context.Context, id string) (*models.TutoringReview, error) {
	review, err := s.tutoringRepo.FindReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Review with ID %s not found", id))
	}
	return review, nil
}

// UpdateReview applies a partial update and returns the fresh row
func (s *tutoringServiceImpl) UpdateReview(ctx context.Context, id string, update *models.TutoringReviewUpdate) (*models.TutoringReview, error) {
	if update.Rating != nil && (*update.Rating < validation.RatingMin || *update.Rating > validation.RatingMax) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			apperrors.ErrValidationFailed, validation.RatingMin, validation.RatingMax)
	}

	update.UpdatedAt = stampNow()
	if err := s.tutoringRepo.UpdateReview(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Review with ID %s not found", id))
		}
		return nil, err
	}
	return s.getReviewByID(ctx, id)
}

// DeleteReview removes a review by ID
func (s *tutoringServiceImpl) DeleteReview(ctx context.Context, id string) error {
	if err := s.tutoringRepo.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Review with ID %s not found", id))
		}
		return err
	}
	return nil
}

// AddAvailableTime attaches a weekly slot to an existing session
func (s *tutoringServiceImpl) AddAvailableTime(ctx context.Context, tutoringID string, slot *models.TutoringAvailableTime) (*models.TutoringAvailableTime, error) {
	if err := validateSlot(slot.DayOfWeek, slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}

	slot.TutoringID = tutoringID
	slot.CreatedAt = stampNow()
	slot.UpdatedAt = slot.CreatedAt
	id, err := s.tutoringRepo.AddAvailableTime(ctx, slot)
	if err != nil {
		return nil, err
	}
	return s.getAvailableTimeByID(ctx, id)
}

// GetAvailableTimes retrieves the weekly slots of a session
func (s *tutoringServiceImpl) GetAvailableTimes(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error) {
	if err := s.requireSession(ctx, tutoringID); err != nil {
		return nil, err
	}
	return s.tutoringRepo.FindAvailableTimes(ctx, tutoringID)
}

func (s *tutoringServiceImpl) getAvailableTimeByID(ctx context.Context, id string) (*models.TutoringAvailableTime, error) {
	slot, err := s.tutoringRepo.FindAvailableTimeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Available time with ID %s not found", id))
	}
	return slot, nil
}

// UpdateAvailableTime applies a partial update and returns the fresh row
func (s *tutoringServiceImpl) UpdateAvailableTime(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) (*models.TutoringAvailableTime, error) {
	if update.DayOfWeek != nil && (*update.DayOfWeek < validation.DayOfWeekMin || *update.DayOfWeek > validation.DayOfWeekMax) {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			apperrors.ErrValidationFailed, validation.DayOfWeekMin, validation.DayOfWeekMax)
	}
	if update.StartTime != nil && !validation.IsTimeOfDay(*update.StartTime) {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", apperrors.ErrValidationFailed)
	}
	if update.EndTime != nil && !validation.IsTimeOfDay(*update.EndTime) {
		return nil, fmt.Errorf("%w: endTime must be HH:MM", apperrors.ErrValidationFailed)
	}

	update.UpdatedAt = stampNow()
	if err := s.tutoringRepo.UpdateAvailableTime(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Available time with ID %s not found", id))
		}
		return nil, err
	}
	return s.getAvailableTimeByID(ctx, id)
}

// DeleteAvailableTime removes a weekly slot by ID
func (s *tutoringServiceImpl) DeleteAvailableTime(ctx context.Context, id string) error {
	if err := s.tutoringRepo.DeleteAvailableTime(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Available time with ID %s not found", id))
		}
		return err
	}
	return nil
}
