package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
)

// IdentityRemover deletes the auth identity backing a profile. Kept small so
// the profile service does not depend on the whole auth surface.
type IdentityRemover interface {
	DeleteIdentity(ctx context.Context, id string) error
}

// ProfileService defines the interface for user profile operations
type ProfileService interface {
	CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetAllProfiles(ctx context.Context) ([]*models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, update *models.ProfileUpdate) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

type profileServiceImpl struct {
	profileRepo     repositories.ProfileRepository
	identityRemover IdentityRemover
}

// NewProfileService creates a new profile service instance
func NewProfileService(profileRepo repositories.ProfileRepository, identityRemover IdentityRemover) ProfileService {
	return &profileServiceImpl{
		profileRepo:     profileRepo,
		identityRemover: identityRemover,
	}
}

// CreateProfile stores a new profile and returns the stored row
func (s *profileServiceImpl) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.Role == "" {
		profile.Role = string(models.RoleStudent)
	}
	profile.CreatedAt = stampNow()
	profile.UpdatedAt = profile.CreatedAt
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfileByID(ctx, profile.ID)
}

// GetAllProfiles retrieves all profiles
func (s *profileServiceImpl) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.FindAll(ctx)
}

// GetProfileByID retrieves a profile by ID
func (s *profileServiceImpl) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with ID %s not found", id))
	}
	return profile, nil
}

// GetProfileByEmail retrieves a profile by email
func (s *profileServiceImpl) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with email %s not found", email))
	}
	return profile, nil
}

// UpdateProfile applies a partial update and returns the fresh row
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, id string, update *models.ProfileUpdate) (*models.Profile, error) {
	update.UpdatedAt = stampNow()
	if err := s.profileRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with ID %s not found", id))
		}
		return nil, err
	}
	return s.GetProfileByID(ctx, id)
}

// DeleteProfile removes the profile row and then tries to drop the backing
// auth identity. Identity removal failures are logged and swallowed so the
// profile deletion still counts.
func (s *profileServiceImpl) DeleteProfile(ctx context.Context, id string) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with ID %s not found", id))
		}
		return err
	}

	if err := s.identityRemover.DeleteIdentity(ctx, id); err != nil {
		logger.Warn().Err(err).Str("profileID", id).
			Msg("Profile deleted but identity removal failed")
	}

	return nil
}
