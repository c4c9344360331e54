package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/filestorage"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
	"github.com/rcastro/tutormatch/internal/pkg/metrics"
)

// Storage buckets. Avatars and tutoring images are served publicly; payment
// proofs are not.
const (
	BucketAvatars        = "avatars"
	BucketPaymentProofs  = "payment-proofs"
	BucketTutoringImages = "tutoring-images"
)

// MaxUploadSize is the per-file ceiling in bytes.
const MaxUploadSize = 5 * 1024 * 1024

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Payment proofs accept receipts exported as PDF but not animated formats.
var paymentProofExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".webp": true,
}

// StorageService handles the three upload kinds the API accepts. Files are
// keyed by their owning entity: uploads land under <bucket>/<ownerID>/ and the
// resulting URL is written back onto the owner where one exists (profiles get
// their avatar, tutoring sessions their cover image). Payment proofs have no
// owning column and are only stored.
type StorageService interface {
	UploadAvatar(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
	GetAvatarURL(userID, fileName string) string
	DeleteAvatar(ctx context.Context, userID, fileName string) error

	UploadPaymentProof(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
	GetPaymentProofURL(userID, fileName string) string
	DeletePaymentProof(ctx context.Context, userID, fileName string) error

	UploadTutoringImage(ctx context.Context, tutoringID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
	GetTutoringImageURL(tutoringID, fileName string) string
	DeleteTutoringImage(ctx context.Context, tutoringID, fileName string) error
}

type storageServiceImpl struct {
	storage     filestorage.Storage
	profileRepo repositories.ProfileRepository
	sessionRepo repositories.TutoringRepository
	collector   *metrics.Collector
}

// NewStorageService creates a storage service and makes sure its buckets
// exist.
func NewStorageService(
	storage filestorage.Storage,
	profileRepo repositories.ProfileRepository,
	sessionRepo repositories.TutoringRepository,
	collector *metrics.Collector,
) (StorageService, error) {
	buckets := []struct {
		name   string
		public bool
	}{
		{BucketAvatars, true},
		{BucketPaymentProofs, false},
		{BucketTutoringImages, true},
	}
	for _, b := range buckets {
		if err := storage.EnsureBucket(b.name, b.public); err != nil {
			return nil, err
		}
	}

	return &storageServiceImpl{
		storage:     storage,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		collector:   collector,
	}, nil
}

// UploadAvatar stores a profile picture in the public avatars bucket and
// records its URL on the profile.
func (s *storageServiceImpl) UploadAvatar(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with ID %s not found", userID))
	}

	resp, err := s.upload(BucketAvatars, userID, originalName, customName, content, imageExtensions)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Update(ctx, userID, &models.ProfileUpdate{Avatar: &resp.URL, UpdatedAt: stampNow()}); err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Failed to record avatar on profile")
		return nil, err
	}
	return resp, nil
}

// GetAvatarURL returns the access URL of a stored avatar
func (s *storageServiceImpl) GetAvatarURL(userID, fileName string) string {
	return s.storage.URL(BucketAvatars, userID+"/"+fileName)
}

// DeleteAvatar removes a stored avatar and clears the profile's avatar field
func (s *storageServiceImpl) DeleteAvatar(ctx context.Context, userID, fileName string) error {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("Profile with ID %s not found", userID))
	}

	if err := s.storage.Delete(BucketAvatars, userID+"/"+fileName); err != nil {
		return err
	}

	cleared := ""
	return s.profileRepo.Update(ctx, userID, &models.ProfileUpdate{Avatar: &cleared, UpdatedAt: stampNow()})
}

// UploadPaymentProof stores a membership payment receipt. Unlike the other
// kinds there is no owning column to update.
func (s *storageServiceImpl) UploadPaymentProof(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	return s.upload(BucketPaymentProofs, userID, originalName, customName, content, paymentProofExtensions)
}

// GetPaymentProofURL returns the bucket-relative path of a stored proof
func (s *storageServiceImpl) GetPaymentProofURL(userID, fileName string) string {
	return s.storage.URL(BucketPaymentProofs, userID+"/"+fileName)
}

// DeletePaymentProof removes a stored payment receipt
func (s *storageServiceImpl) DeletePaymentProof(ctx context.Context, userID, fileName string) error {
	return s.storage.Delete(BucketPaymentProofs, userID+"/"+fileName)
}

// UploadTutoringImage stores a session cover image and records its URL on the
// session.
func (s *storageServiceImpl) UploadTutoringImage(ctx context.Context, tutoringID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, tutoringID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", tutoringID))
	}

	resp, err := s.upload(BucketTutoringImages, tutoringID, originalName, customName, content, imageExtensions)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateSession(ctx, tutoringID, &models.TutoringSessionUpdate{ImageURL: &resp.URL, UpdatedAt: stampNow()}); err != nil {
		logger.Error().Err(err).Str("tutoringID", tutoringID).Msg("Failed to record image on tutoring session")
		return nil, err
	}
	return resp, nil
}

// GetTutoringImageURL returns the access URL of a stored session image
func (s *storageServiceImpl) GetTutoringImageURL(tutoringID, fileName string) string {
	return s.storage.URL(BucketTutoringImages, tutoringID+"/"+fileName)
}

// DeleteTutoringImage removes a session cover image and clears the session's
// image field.
func (s *storageServiceImpl) DeleteTutoringImage(ctx context.Context, tutoringID, fileName string) error {
	session, err := s.sessionRepo.FindSessionByID(ctx, tutoringID)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("Tutoring session with ID %s not found", tutoringID))
	}

	if err := s.storage.Delete(BucketTutoringImages, tutoringID+"/"+fileName); err != nil {
		return err
	}

	cleared := ""
	return s.sessionRepo.UpdateSession(ctx, tutoringID, &models.TutoringSessionUpdate{ImageURL: &cleared, UpdatedAt: stampNow()})
}

func (s *storageServiceImpl) upload(bucket, ownerID, originalName, customName string, content []byte, allowed map[string]bool) (*dto.FileUploadResponse, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrValidationFailed)
	}
	if len(content) > MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", apperrors.ErrValidationFailed, MaxUploadSize)
	}

	name := customName
	if name == "" {
		name = storedName(ownerID, filepath.Ext(originalName))
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowed[ext] {
		return nil, fmt.Errorf("%w: file type %q is not allowed", apperrors.ErrValidationFailed, ext)
	}

	stored, err := s.storage.Save(bucket, ownerID+"/"+name, content)
	if err != nil {
		logger.Error().Err(err).Str("bucket", bucket).Str("ownerID", ownerID).Msg("Failed to store upload")
		return nil, err
	}

	if s.collector != nil {
		s.collector.RecordUpload(bucket)
	}

	return &dto.FileUploadResponse{
		URL:      stored.URL,
		Path:     stored.Path,
		Name:     name,
		Size:     stored.Size,
		MimeType: mimeTypeForExt(ext),
		Bucket:   bucket,
	}, nil
}

// storedName builds a collision-safe filename: owner, upload time and a
// random suffix.
func storedName(ownerID, ext string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s-%d-%s%s", ownerID, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}

func mimeTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
