package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/auth"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
)

// AuthService handles registration, login and token validation
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateToken(tokenString string) (*auth.Claims, error)
	DeleteIdentity(ctx context.Context, id string) error
}

type authServiceImpl struct {
	identityRepo repositories.IdentityRepository
	profileRepo  repositories.ProfileRepository
	jwtService   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	identityRepo repositories.IdentityRepository,
	profileRepo repositories.ProfileRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		jwtService:   jwtService,
	}
}

// Register creates an auth identity plus its profile and signs the caller in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.identityRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	identity := &models.Identity{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    stampNow(),
	}
	identityID, err := s.identityRepo.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:             identityID,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		Role:           req.Role,
		SemesterNumber: req.SemesterNumber,
		CreatedAt:      identity.CreatedAt,
		UpdatedAt:      identity.CreatedAt,
	}
	if req.Phone != "" {
		profile.Phone = &req.Phone
	}
	if req.AcademicYear != "" {
		profile.AcademicYear = &req.AcademicYear
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// The identity is unusable without a profile, drop it again.
		if delErr := s.identityRepo.Delete(ctx, identityID); delErr != nil {
			logger.Warn().Err(delErr).Str("identityID", identityID).
				Msg("Failed to roll back identity after profile creation error")
		}
		return nil, err
	}

	return s.buildAuthResponse(ctx, identityID, req.Email, identity.Role)
}

// Login verifies the credentials and returns a fresh token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identity, err := s.identityRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(identity.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(ctx, identity.ID, identity.Email, identity.Role)
}

func (s *authServiceImpl) buildAuthResponse(ctx context.Context, identityID, email, role string) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(identityID, email, role)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	profile, err := s.profileRepo.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			ExpiresIn:    int64(expiresIn),
			RefreshToken: refreshToken,
		},
		Profile: profile,
	}, nil
}

// ValidateToken parses the access token and returns its claims
func (s *authServiceImpl) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// DeleteIdentity removes an auth identity
func (s *authServiceImpl) DeleteIdentity(ctx context.Context, id string) error {
	return s.identityRepo.Delete(ctx, id)
}
