package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/filestorage"
)

type mockStorage struct {
	buckets map[string]bool
	saveFn  func(bucket, filename string, content []byte) (*filestorage.StoredFile, error)
	deleted []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{buckets: map[string]bool{}}
}

func (m *mockStorage) EnsureBucket(name string, public bool) error {
	m.buckets[name] = public
	return nil
}

func (m *mockStorage) Save(bucket, filename string, content []byte) (*filestorage.StoredFile, error) {
	if m.saveFn != nil {
		return m.saveFn(bucket, filename, content)
	}
	return &filestorage.StoredFile{
		Bucket: bucket,
		Name:   filename,
		Path:   bucket + "/" + filename,
		URL:    "http://localhost/files/" + bucket + "/" + filename,
		Size:   int64(len(content)),
	}, nil
}

func (m *mockStorage) Delete(bucket, filename string) error {
	m.deleted = append(m.deleted, bucket+"/"+filename)
	return nil
}

func (m *mockStorage) URL(bucket, filename string) string {
	return "http://localhost/files/" + bucket + "/" + filename
}

func newStorageTestService(t *testing.T, storage filestorage.Storage, profiles *mockProfileRepo, sessions *mockTutoringRepo) StorageService {
	t.Helper()
	if profiles == nil {
		profiles = &mockProfileRepo{}
	}
	if sessions == nil {
		sessions = &mockTutoringRepo{}
	}
	svc, err := NewStorageService(storage, profiles, sessions, nil)
	if err != nil {
		t.Fatalf("NewStorageService returned error: %v", err)
	}
	return svc
}

func TestNewStorageServiceEnsuresBuckets(t *testing.T) {
	storage := newMockStorage()
	newStorageTestService(t, storage, nil, nil)

	public, ok := storage.buckets[BucketAvatars]
	if !ok || !public {
		t.Error("avatars bucket must exist and be public")
	}
	public, ok = storage.buckets[BucketPaymentProofs]
	if !ok || public {
		t.Error("payment-proofs bucket must exist and be private")
	}
	public, ok = storage.buckets[BucketTutoringImages]
	if !ok || !public {
		t.Error("tutoring-images bucket must exist and be public")
	}
}

func TestUploadAvatarStoresUnderOwnerAndUpdatesProfile(t *testing.T) {
	storage := newMockStorage()
	var savedName string
	storage.saveFn = func(bucket, filename string, content []byte) (*filestorage.StoredFile, error) {
		savedName = filename
		return &filestorage.StoredFile{
			Bucket: bucket,
			Name:   filename,
			Path:   bucket + "/" + filename,
			URL:    "http://localhost/files/" + bucket + "/" + filename,
			Size:   int64(len(content)),
		}, nil
	}

	var updatedID string
	var update *models.ProfileUpdate
	profiles := &mockProfileRepo{
		updateFn: func(ctx context.Context, id string, u *models.ProfileUpdate) error {
			updatedID = id
			update = u
			return nil
		},
	}
	svc := newStorageTestService(t, storage, profiles, nil)

	resp, err := svc.UploadAvatar(context.Background(), "user-1", "me.png", "", []byte("fake image"))
	if err != nil {
		t.Fatalf("UploadAvatar returned error: %v", err)
	}
	if !strings.HasPrefix(savedName, "user-1/user-1-") {
		t.Errorf("file must land under the owner's prefix, got %q", savedName)
	}
	if !strings.HasSuffix(savedName, ".png") {
		t.Errorf("stored name must keep the extension, got %q", savedName)
	}
	if resp.Bucket != BucketAvatars {
		t.Errorf("expected avatars bucket, got %q", resp.Bucket)
	}
	if resp.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", resp.MimeType)
	}
	if updatedID != "user-1" || update == nil || update.Avatar == nil || *update.Avatar != resp.URL {
		t.Errorf("avatar URL must be written back onto the profile, got update %+v", update)
	}
}

func TestUploadAvatarKeepsCustomFileName(t *testing.T) {
	storage := newMockStorage()
	var savedName string
	storage.saveFn = func(bucket, filename string, content []byte) (*filestorage.StoredFile, error) {
		savedName = filename
		return &filestorage.StoredFile{Bucket: bucket, Name: filename, Size: int64(len(content))}, nil
	}
	svc := newStorageTestService(t, storage, nil, nil)

	resp, err := svc.UploadAvatar(context.Background(), "user-1", "original.png", "me.png", []byte("fake image"))
	if err != nil {
		t.Fatalf("UploadAvatar returned error: %v", err)
	}
	if savedName != "user-1/me.png" {
		t.Errorf("custom filename must be used as-is under the owner, got %q", savedName)
	}
	if resp.Name != "me.png" {
		t.Errorf("response must carry the custom name, got %q", resp.Name)
	}
}

func TestUploadAvatarRequiresProfile(t *testing.T) {
	storage := newMockStorage()
	storage.saveFn = func(bucket, filename string, content []byte) (*filestorage.StoredFile, error) {
		t.Error("nothing should be stored for a missing profile")
		return nil, errors.New("unexpected save")
	}
	profiles := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
			return nil, nil
		},
	}
	svc := newStorageTestService(t, storage, profiles, nil)

	_, err := svc.UploadAvatar(context.Background(), "ghost", "me.png", "", []byte("fake image"))
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDeleteAvatarClearsProfileField(t *testing.T) {
	storage := newMockStorage()
	var update *models.ProfileUpdate
	profiles := &mockProfileRepo{
		updateFn: func(ctx context.Context, id string, u *models.ProfileUpdate) error {
			update = u
			return nil
		},
	}
	svc := newStorageTestService(t, storage, profiles, nil)

	if err := svc.DeleteAvatar(context.Background(), "user-1", "me.png"); err != nil {
		t.Fatalf("DeleteAvatar returned error: %v", err)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != "avatars/user-1/me.png" {
		t.Errorf("expected the owner-scoped file deleted, got %v", storage.deleted)
	}
	if update == nil || update.Avatar == nil || *update.Avatar != "" {
		t.Errorf("profile avatar must be cleared, got %+v", update)
	}
}

func TestUploadTutoringImageUpdatesSession(t *testing.T) {
	storage := newMockStorage()
	var update *models.TutoringSessionUpdate
	sessions := &mockTutoringRepo{
		updateSessionFn: func(ctx context.Context, id string, u *models.TutoringSessionUpdate) error {
			update = u
			return nil
		},
	}
	svc := newStorageTestService(t, storage, nil, sessions)

	resp, err := svc.UploadTutoringImage(context.Background(), "session-1", "cover.jpg", "", []byte("fake image"))
	if err != nil {
		t.Fatalf("UploadTutoringImage returned error: %v", err)
	}
	if update == nil || update.ImageURL == nil || *update.ImageURL != resp.URL {
		t.Errorf("image URL must be written back onto the session, got %+v", update)
	}
}

func TestUploadTutoringImageRequiresSession(t *testing.T) {
	sessions := &mockTutoringRepo{
		findSessionByIDFn: func(ctx context.Context, id string) (*models.TutoringSession, error) {
			return nil, nil
		},
	}
	svc := newStorageTestService(t, newMockStorage(), nil, sessions)

	_, err := svc.UploadTutoringImage(context.Background(), "ghost", "cover.jpg", "", []byte("fake image"))
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestUploadPaymentProofSkipsOwnerChecks(t *testing.T) {
	// Payment proofs have no owning column: a missing profile must not
	// block the upload.
	profiles := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
			return nil, nil
		},
	}
	svc := newStorageTestService(t, newMockStorage(), profiles, nil)

	if _, err := svc.UploadPaymentProof(context.Background(), "user-1", "receipt.pdf", "", []byte("data")); err != nil {
		t.Errorf("payment proof upload must not require a profile, got %v", err)
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newStorageTestService(t, newMockStorage(), nil, nil)

	_, err := svc.UploadAvatar(context.Background(), "user-1", "me.png", "", nil)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newStorageTestService(t, newMockStorage(), nil, nil)

	big := bytes.Repeat([]byte{0xFF}, MaxUploadSize+1)
	_, err := svc.UploadTutoringImage(context.Background(), "session-1", "cover.jpg", "", big)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc := newStorageTestService(t, newMockStorage(), nil, nil)
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, "user-1", "script.exe", "", []byte("data"))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}

	// PDFs are only valid as payment proofs, and proofs take no GIFs.
	_, err = svc.UploadAvatar(ctx, "user-1", "receipt.pdf", "", []byte("data"))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error for avatar PDF, got %v", err)
	}
	_, err = svc.UploadPaymentProof(ctx, "user-1", "anim.gif", "", []byte("data"))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error for payment proof GIF, got %v", err)
	}
	if _, err = svc.UploadPaymentProof(ctx, "user-1", "receipt.pdf", "", []byte("data")); err != nil {
		t.Errorf("payment proof PDF must be accepted, got %v", err)
	}
}
