package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
)

type mockTutoringRepo struct {
	createSessionFn         func(ctx context.Context, session *models.TutoringSession) (string, error)
	findSessionByIDFn       func(ctx context.Context, id string) (*models.TutoringSession, error)
	sessionExistsFn         func(ctx context.Context, id string) (bool, error)
	updateSessionFn         func(ctx context.Context, id string, update *models.TutoringSessionUpdate) error
	deleteSessionFn         func(ctx context.Context, id string) error
	addMaterialFn           func(ctx context.Context, material *models.TutoringMaterial) (string, error)
	findMaterialByIDFn      func(ctx context.Context, id string) (*models.TutoringMaterial, error)
	addReviewFn             func(ctx context.Context, review *models.TutoringReview) (string, error)
	findReviewByIDFn        func(ctx context.Context, id string) (*models.TutoringReview, error)
	addAvailableTimeFn      func(ctx context.Context, slot *models.TutoringAvailableTime) (string, error)
	findAvailableTimesFn    func(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error)
	deleteAvailableTimeFn   func(ctx context.Context, id string) error
	updateAvailableTimeFn   func(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) error
	findAvailableTimeByIDFn func(ctx context.Context, id string) (*models.TutoringAvailableTime, error)
}

func (m *mockTutoringRepo) CreateSession(ctx context.Context, session *models.TutoringSession) (string, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, session)
	}
	return "session-1", nil
}

func (m *mockTutoringRepo) FindAllSessions(ctx context.Context) ([]*models.TutoringSession, error) {
	return nil, nil
}

func (m *mockTutoringRepo) FindSessionsByTutor(ctx context.Context, tutorID string) ([]*models.TutoringSession, error) {
	return nil, nil
}

func (m *mockTutoringRepo) FindSessionsByCourse(ctx context.Context, courseID string) ([]*models.TutoringSession, error) {
	return nil, nil
}

func (m *mockTutoringRepo) FindSessionByID(ctx context.Context, id string) (*models.TutoringSession, error) {
	if m.findSessionByIDFn != nil {
		return m.findSessionByIDFn(ctx, id)
	}
	return &models.TutoringSession{ID: id}, nil
}

func (m *mockTutoringRepo) SessionExists(ctx context.Context, id string) (bool, error) {
	if m.sessionExistsFn != nil {
		return m.sessionExistsFn(ctx, id)
	}
	return true, nil
}

func (m *mockTutoringRepo) UpdateSession(ctx context.Context, id string, update *models.TutoringSessionUpdate) error {
	if m.updateSessionFn != nil {
		return m.updateSessionFn(ctx, id, update)
	}
	return nil
}

func (m *mockTutoringRepo) DeleteSession(ctx context.Context, id string) error {
	if m.deleteSessionFn != nil {
		return m.deleteSessionFn(ctx, id)
	}
	return nil
}

func (m *mockTutoringRepo) AddMaterial(ctx context.Context, material *models.TutoringMaterial) (string, error) {
	if m.addMaterialFn != nil {
		return m.addMaterialFn(ctx, material)
	}
	return "material-1", nil
}

func (m *mockTutoringRepo) FindMaterials(ctx context.Context, tutoringID string) ([]*models.TutoringMaterial, error) {
	return nil, nil
}

func (m *mockTutoringRepo) FindMaterialByID(ctx context.Context, id string) (*models.TutoringMaterial, error) {
	if m.findMaterialByIDFn != nil {
		return m.findMaterialByIDFn(ctx, id)
	}
	return &models.TutoringMaterial{ID: id}, nil
}

func (m *mockTutoringRepo) UpdateMaterial(ctx context.Context, id string, update *models.TutoringMaterialUpdate) error {
	return nil
}

func (m *mockTutoringRepo) DeleteMaterial(ctx context.Context, id string) error {
	return nil
}

func (m *mockTutoringRepo) AddReview(ctx context.Context, review *models.TutoringReview) (string, error) {
	if m.addReviewFn != nil {
		return m.addReviewFn(ctx, review)
	}
	return "review-1", nil
}

func (m *mockTutoringRepo) FindReviews(ctx context.Context, tutoringID string) ([]*models.TutoringReview, error) {
	return nil, nil
}

func (m *mockTutoringRepo) FindReviewByID(ctx context.Context, id string) (*models.TutoringReview, error) {
	if m.findReviewByIDFn != nil {
		return m.findReviewByIDFn(ctx, id)
	}
	return &models.TutoringReview{ID: id}, nil
}

func (m *mockTutoringRepo) UpdateReview(ctx context.Context, id string, update *models.TutoringReviewUpdate) error {
	return nil
}

func (m *mockTutoringRepo) DeleteReview(ctx context.Context, id string) error {
	return nil
}

func (m *mockTutoringRepo) AddAvailableTime(ctx context.Context, slot *models.TutoringAvailableTime) (string, error) {
	if m.addAvailableTimeFn != nil {
		return m.addAvailableTimeFn(ctx, slot)
	}
	return "slot-1", nil
}

func (m *mockTutoringRepo) FindAvailableTimes(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error) {
	if m.findAvailableTimesFn != nil {
		return m.findAvailableTimesFn(ctx, tutoringID)
	}
	return nil, nil
}

func (m *mockTutoringRepo) FindAvailableTimeByID(ctx context.Context, id string) (*models.TutoringAvailableTime, error) {
	if m.findAvailableTimeByIDFn != nil {
		return m.findAvailableTimeByIDFn(ctx, id)
	}
	return &models.TutoringAvailableTime{ID: id}, nil
}

func (m *mockTutoringRepo) UpdateAvailableTime(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) error {
	if m.updateAvailableTimeFn != nil {
		return m.updateAvailableTimeFn(ctx, id, update)
	}
	return nil
}

func (m *mockTutoringRepo) DeleteAvailableTime(ctx context.Context, id string) error {
	if m.deleteAvailableTimeFn != nil {
		return m.deleteAvailableTimeFn(ctx, id)
	}
	return nil
}

func TestCreateSessionInsertsSlotsAndReloads(t *testing.T) {
	var insertedSlots []*models.TutoringAvailableTime
	reloaded := false

	repo := &mockTutoringRepo{
		addAvailableTimeFn: func(ctx context.Context, slot *models.TutoringAvailableTime) (string, error) {
			insertedSlots = append(insertedSlots, slot)
			return "slot-1", nil
		},
		findSessionByIDFn: func(ctx context.Context, id string) (*models.TutoringSession, error) {
			reloaded = true
			return &models.TutoringSession{ID: id, Title: "Algebra basics"}, nil
		},
	}
	svc := NewTutoringService(repo)

	session, err := svc.CreateSession(context.Background(), &dto.CreateTutoringSessionRequest{
		TutorID: "tutor-1",
		Title:   "Algebra basics",
		Price:   25,
		AvailableTimes: []dto.CreateAvailableTimeRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
			{DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00"},
		},
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if session == nil || session.ID != "session-1" {
		t.Errorf("unexpected session: %+v", session)
	}
	if len(insertedSlots) != 2 {
		t.Errorf("expected 2 slots inserted, got %d", len(insertedSlots))
	}
	for _, slot := range insertedSlots {
		if slot.TutoringID != "session-1" {
			t.Errorf("slot not bound to new session: %+v", slot)
		}
	}
	if !reloaded {
		t.Error("expected the aggregate to be reloaded after creation")
	}
}

func TestCreateSessionStampsTimestamps(t *testing.T) {
	var createdRow *models.TutoringSession
	var insertedSlots []*models.TutoringAvailableTime
	repo := &mockTutoringRepo{
		createSessionFn: func(ctx context.Context, session *models.TutoringSession) (string, error) {
			createdRow = session
			return "session-1", nil
		},
		addAvailableTimeFn: func(ctx context.Context, slot *models.TutoringAvailableTime) (string, error) {
			insertedSlots = append(insertedSlots, slot)
			return "slot-1", nil
		},
	}
	svc := NewTutoringService(repo)

	_, err := svc.CreateSession(context.Background(), &dto.CreateTutoringSessionRequest{
		TutorID: "tutor-1",
		Title:   "Algebra basics",
		Price:   25,
		AvailableTimes: []dto.CreateAvailableTimeRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		},
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if createdRow.CreatedAt == nil || createdRow.UpdatedAt == nil {
		t.Fatal("expected created/updated stamps on the session row")
	}
	if len(insertedSlots) != 1 || insertedSlots[0].CreatedAt == nil || insertedSlots[0].UpdatedAt == nil {
		t.Error("expected created/updated stamps on the initial slot rows")
	}
}

func TestUpdateSessionStampsUpdatedAt(t *testing.T) {
	var applied *models.TutoringSessionUpdate
	repo := &mockTutoringRepo{
		updateSessionFn: func(ctx context.Context, id string, update *models.TutoringSessionUpdate) error {
			applied = update
			return nil
		},
	}
	svc := NewTutoringService(repo)

	title := "Algebra, advanced"
	if _, err := svc.UpdateSession(context.Background(), "session-1", &models.TutoringSessionUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateSession returned error: %v", err)
	}
	if applied.UpdatedAt == nil {
		t.Error("expected the update to carry an updated stamp")
	}
}

func TestCreateSessionSurfacesSlotInsertFailure(t *testing.T) {
	slotErr := errors.New("insert failed")
	sessionCreated := false
	repo := &mockTutoringRepo{
		createSessionFn: func(ctx context.Context, session *models.TutoringSession) (string, error) {
			sessionCreated = true
			return "session-1", nil
		},
		addAvailableTimeFn: func(ctx context.Context, slot *models.TutoringAvailableTime) (string, error) {
			return "", slotErr
		},
	}
	svc := NewTutoringService(repo)

	session, err := svc.CreateSession(context.Background(), &dto.CreateTutoringSessionRequest{
		TutorID: "tutor-1",
		Title:   "Physics",
		AvailableTimes: []dto.CreateAvailableTimeRequest{
			{DayOfWeek: 2, StartTime: "10:00", EndTime: "12:00"},
		},
	})
	if !errors.Is(err, slotErr) {
		t.Fatalf("expected the slot insert error to surface, got %v", err)
	}
	if session != nil {
		t.Errorf("no session must be returned on a failed slot insert, got %+v", session)
	}
	// The session row stays behind; only the error propagates.
	if !sessionCreated {
		t.Error("the session row must be created before slot inserts run")
	}
}

func TestCreateSessionRejectsInvalidSlot(t *testing.T) {
	svc := NewTutoringService(&mockTutoringRepo{})

	cases := []dto.CreateAvailableTimeRequest{
		{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"},
	}
	for _, slot := range cases {
		_, err := svc.CreateSession(context.Background(), &dto.CreateTutoringSessionRequest{
			TutorID:        "tutor-1",
			Title:          "Bad slots",
			AvailableTimes: []dto.CreateAvailableTimeRequest{slot},
		})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("slot %+v: expected validation error, got %v", slot, err)
		}
	}
}

func TestGetSessionByIDNotFound(t *testing.T) {
	repo := &mockTutoringRepo{
		findSessionByIDFn: func(ctx context.Context, id string) (*models.TutoringSession, error) {
			return nil, nil
		},
	}
	svc := NewTutoringService(repo)

	_, err := svc.GetSessionByID(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAddMaterialRequiresSession(t *testing.T) {
	repo := &mockTutoringRepo{
		sessionExistsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := NewTutoringService(repo)

	_, err := svc.AddMaterial(context.Background(), "missing", &models.TutoringMaterial{
		Title: "Notes",
		Type:  models.MaterialDocument,
		URL:   "https://example.com/notes.pdf",
	})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAddMaterialBindsSessionID(t *testing.T) {
	var added *models.TutoringMaterial
	repo := &mockTutoringRepo{
		addMaterialFn: func(ctx context.Context, material *models.TutoringMaterial) (string, error) {
			added = material
			return "material-1", nil
		},
	}
	svc := NewTutoringService(repo)

	material, err := svc.AddMaterial(context.Background(), "session-1", &models.TutoringMaterial{
		Title: "Notes",
		Type:  models.MaterialDocument,
		URL:   "https://example.com/notes.pdf",
	})
	if err != nil {
		t.Fatalf("AddMaterial returned error: %v", err)
	}
	if added.TutoringID != "session-1" {
		t.Errorf("expected material bound to session-1, got %q", added.TutoringID)
	}
	if material.ID != "material-1" {
		t.Errorf("expected the stored row back, got %+v", material)
	}
}

func TestAddReviewValidatesRating(t *testing.T) {
	svc := NewTutoringService(&mockTutoringRepo{})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), "session-1", &models.TutoringReview{
			StudentID: "student-1",
			Rating:    rating,
		})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestUpdateSessionNotFound(t *testing.T) {
	repo := &mockTutoringRepo{
		updateSessionFn: func(ctx context.Context, id string, update *models.TutoringSessionUpdate) error {
			return apperrors.ErrResourceNotFound
		},
	}
	svc := NewTutoringService(repo)

	title := "New title"
	_, err := svc.UpdateSession(context.Background(), "missing", &models.TutoringSessionUpdate{Title: &title})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
