package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
)

type mockProfileRepo struct {
	createFn      func(ctx context.Context, profile *models.Profile) error
	findByIDFn    func(ctx context.Context, id string) (*models.Profile, error)
	findByEmailFn func(ctx context.Context, email string) (*models.Profile, error)
	updateFn      func(ctx context.Context, id string, update *models.ProfileUpdate) error
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) FindAll(ctx context.Context) ([]*models.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &models.Profile{ID: id}, nil
}

func (m *mockProfileRepo) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, id string, update *models.ProfileUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockIdentityRemover struct {
	deleteIdentityFn func(ctx context.Context, id string) error
}

func (m *mockIdentityRemover) DeleteIdentity(ctx context.Context, id string) error {
	if m.deleteIdentityFn != nil {
		return m.deleteIdentityFn(ctx, id)
	}
	return nil
}

func TestCreateProfileDefaultsRole(t *testing.T) {
	var created *models.Profile
	repo := &mockProfileRepo{
		createFn: func(ctx context.Context, profile *models.Profile) error {
			created = profile
			return nil
		},
	}
	svc := NewProfileService(repo, &mockIdentityRemover{})

	_, err := svc.CreateProfile(context.Background(), &models.Profile{
		ID:             "profile-1",
		Email:          "ana@example.com",
		FirstName:      "Ana",
		LastName:       "Torres",
		Gender:         "female",
		SemesterNumber: 3,
	})
	if err != nil {
		t.Fatalf("CreateProfile returned error: %v", err)
	}
	if created.Role != string(models.RoleStudent) {
		t.Errorf("expected role defaulted to student, got %q", created.Role)
	}
}

func TestCreateProfileStampsTimestamps(t *testing.T) {
	var created *models.Profile
	repo := &mockProfileRepo{
		createFn: func(ctx context.Context, profile *models.Profile) error {
			created = profile
			return nil
		},
	}
	svc := NewProfileService(repo, &mockIdentityRemover{})

	_, err := svc.CreateProfile(context.Background(), &models.Profile{
		ID:        "profile-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Torres",
		Gender:    "female",
	})
	if err != nil {
		t.Fatalf("CreateProfile returned error: %v", err)
	}
	if created.CreatedAt == nil || created.UpdatedAt == nil {
		t.Fatal("expected created/updated stamps on the profile row")
	}
	if !created.CreatedAt.Equal(*created.UpdatedAt) {
		t.Error("expected created and updated stamps to match on insert")
	}
}

func TestUpdateProfileStampsUpdatedAt(t *testing.T) {
	var applied *models.ProfileUpdate
	repo := &mockProfileRepo{
		updateFn: func(ctx context.Context, id string, update *models.ProfileUpdate) error {
			applied = update
			return nil
		},
	}
	svc := NewProfileService(repo, &mockIdentityRemover{})

	phone := "611223344"
	if _, err := svc.UpdateProfile(context.Background(), "profile-1", &models.ProfileUpdate{Phone: &phone}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if applied.UpdatedAt == nil {
		t.Error("expected the update to carry an updated stamp")
	}
}

func TestGetProfileByIDNotFound(t *testing.T) {
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
			return nil, nil
		},
	}
	svc := NewProfileService(repo, &mockIdentityRemover{})

	_, err := svc.GetProfileByID(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDeleteProfileRemovesIdentity(t *testing.T) {
	identityDeleted := ""
	repo := &mockProfileRepo{}
	remover := &mockIdentityRemover{
		deleteIdentityFn: func(ctx context.Context, id string) error {
			identityDeleted = id
			return nil
		},
	}
	svc := NewProfileService(repo, remover)

	if err := svc.DeleteProfile(context.Background(), "profile-1"); err != nil {
		t.Fatalf("DeleteProfile returned error: %v", err)
	}
	if identityDeleted != "profile-1" {
		t.Errorf("expected identity profile-1 deleted, got %q", identityDeleted)
	}
}

func TestDeleteProfileSwallowsIdentityFailure(t *testing.T) {
	repo := &mockProfileRepo{}
	remover := &mockIdentityRemover{
		deleteIdentityFn: func(ctx context.Context, id string) error {
			return errors.New("identity backend down")
		},
	}
	svc := NewProfileService(repo, remover)

	// The profile row is already gone at this point, so the identity
	// cleanup failure must not surface to the caller.
	if err := svc.DeleteProfile(context.Background(), "profile-1"); err != nil {
		t.Errorf("expected identity failure to be swallowed, got %v", err)
	}
}

func TestDeleteProfileNotFound(t *testing.T) {
	repo := &mockProfileRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return apperrors.ErrResourceNotFound
		},
	}
	identityCalled := false
	remover := &mockIdentityRemover{
		deleteIdentityFn: func(ctx context.Context, id string) error {
			identityCalled = true
			return nil
		},
	}
	svc := NewProfileService(repo, remover)

	err := svc.DeleteProfile(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if identityCalled {
		t.Error("identity must not be touched when the profile delete fails")
	}
}
