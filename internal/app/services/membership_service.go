package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
)

// MembershipService defines the interface for membership operations
type MembershipService interface {
	CreateMembership(ctx context.Context, membership *models.Membership) (*models.Membership, error)
	GetAllMemberships(ctx context.Context) ([]*models.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (*models.Membership, error)
	GetMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error)
	GetCurrentMembership(ctx context.Context, userID string) (*models.Membership, error)
	UpdateMembershipStatus(ctx context.Context, id string, status models.MembershipStatus) (*models.Membership, error)
	DeleteMembership(ctx context.Context, id string) error
}

type membershipServiceImpl struct {
	membershipRepo repositories.MembershipRepository
}

// NewMembershipService creates a new membership service instance
func NewMembershipService(membershipRepo repositories.MembershipRepository) MembershipService {
	return &membershipServiceImpl{membershipRepo: membershipRepo}
}

// CreateMembership stores a new membership. New memberships start pending
// unless the caller says otherwise.
func (s *membershipServiceImpl) CreateMembership(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if membership.Status == "" {
		membership.Status = models.MembershipPending
	}

	membership.CreatedAt = stampNow()
	id, err := s.membershipRepo.Create(ctx, membership)
	if err != nil {
		return nil, err
	}
	return s.GetMembershipByID(ctx, id)
}

// GetAllMemberships retrieves all memberships
func (s *membershipServiceImpl) GetAllMemberships(ctx context.Context) ([]*models.Membership, error) {
	return s.membershipRepo.FindAll(ctx)
}

// GetMembershipByID retrieves a membership by ID
func (s *membershipServiceImpl) GetMembershipByID(ctx context.Context, id string) (*models.Membership, error) {
	membership, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Membership with ID %s not found", id))
	}
	return membership, nil
}

// GetMembershipsByUser retrieves a user's memberships, newest first
func (s *membershipServiceImpl) GetMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return s.membershipRepo.FindByUser(ctx, userID)
}

// GetCurrentMembership retrieves the user's most recent membership
func (s *membershipServiceImpl) GetCurrentMembership(ctx context.Context, userID string) (*models.Membership, error) {
	membership, err := s.membershipRepo.FindCurrentByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("No membership found for user %s", userID))
	}
	return membership, nil
}

// UpdateMembershipStatus changes the review status and returns the fresh row
func (s *membershipServiceImpl) UpdateMembershipStatus(ctx context.Context, id string, status models.MembershipStatus) (*models.Membership, error) {
	switch status {
	case models.MembershipPending, models.MembershipActive, models.MembershipRejected:
	default:
		return nil, fmt.Errorf("%w: invalid membership status %q", apperrors.ErrValidationFailed, status)
	}

	if err := s.membershipRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Membership with ID %s not found", id))
		}
		return nil, err
	}
	return s.GetMembershipByID(ctx, id)
}

// DeleteMembership removes a membership by ID
func (s *membershipServiceImpl) DeleteMembership(ctx context.Context, id string) error {
	if err := s.membershipRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Membership with ID %s not found", id))
		}
		return err
	}
	return nil
}
