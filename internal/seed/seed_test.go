package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/repositories"
)

type mockSemesterRepo struct {
	countFn     func(ctx context.Context) (int64, error)
	created     []*models.Semester
	links       map[string][]string
	createErrFn func(name string) error
}

func (m *mockSemesterRepo) Create(ctx context.Context, semester *models.Semester) (string, error) {
	if m.createErrFn != nil {
		if err := m.createErrFn(semester.Name); err != nil {
			return "", err
		}
	}
	m.created = append(m.created, semester)
	return fmt.Sprintf("semester-%d", len(m.created)), nil
}

func (m *mockSemesterRepo) FindAll(ctx context.Context) ([]*models.Semester, error) {
	return nil, nil
}

func (m *mockSemesterRepo) FindByID(ctx context.Context, id string) (*models.Semester, error) {
	return nil, nil
}

func (m *mockSemesterRepo) Update(ctx context.Context, id string, update *models.SemesterUpdate) error {
	return nil
}

func (m *mockSemesterRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockSemesterRepo) AddCourse(ctx context.Context, semesterID, courseID string) error {
	if m.links == nil {
		m.links = map[string][]string{}
	}
	m.links[semesterID] = append(m.links[semesterID], courseID)
	return nil
}

func (m *mockSemesterRepo) RemoveCourse(ctx context.Context, semesterID, courseID string) error {
	return nil
}

func (m *mockSemesterRepo) ListCourses(ctx context.Context, semesterID string) ([]*models.Course, error) {
	return nil, nil
}

func (m *mockSemesterRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockCourseRepo struct {
	created []*models.Course
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) (string, error) {
	m.created = append(m.created, course)
	return fmt.Sprintf("course-%d", len(m.created)), nil
}

func (m *mockCourseRepo) FindAll(ctx context.Context, semesterNumber *int) ([]*models.Course, error) {
	return nil, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return nil, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, id string, update *models.CourseUpdate) error {
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestCreateDefaultDataSeedsCatalog(t *testing.T) {
	semRepo := &mockSemesterRepo{}
	courseRepo := &mockCourseRepo{}
	repos := &repositories.Repositories{
		SemesterRepository: semRepo,
		CourseRepository:   courseRepo,
	}

	if err := CreateDefaultData(context.Background(), repos, nil, zerolog.Nop()); err != nil {
		t.Fatalf("CreateDefaultData returned error: %v", err)
	}

	if len(semRepo.created) != 8 {
		t.Errorf("expected 8 semesters, got %d", len(semRepo.created))
	}
	if semRepo.created[0].Name != "First" || semRepo.created[7].Name != "Eighth" {
		t.Errorf("unexpected semester names %q..%q", semRepo.created[0].Name, semRepo.created[7].Name)
	}
	if len(courseRepo.created) != 14 {
		t.Errorf("expected 14 courses, got %d", len(courseRepo.created))
	}

	linked := 0
	for _, courses := range semRepo.links {
		linked += len(courses)
	}
	if linked != 14 {
		t.Errorf("expected every course linked to its semester, got %d links", linked)
	}

	for _, course := range courseRepo.created {
		if course.SemesterNumber < 1 || course.SemesterNumber > 8 {
			t.Errorf("course %q has semester number %d out of range", course.Name, course.SemesterNumber)
		}
	}
}

func TestCreateDefaultDataSkipsSeededCatalog(t *testing.T) {
	semRepo := &mockSemesterRepo{
		countFn: func(ctx context.Context) (int64, error) {
			return 8, nil
		},
	}
	repos := &repositories.Repositories{
		SemesterRepository: semRepo,
		CourseRepository:   &mockCourseRepo{},
	}

	if err := CreateDefaultData(context.Background(), repos, nil, zerolog.Nop()); err != nil {
		t.Fatalf("CreateDefaultData returned error: %v", err)
	}
	if len(semRepo.created) != 0 {
		t.Errorf("expected no semesters created, got %d", len(semRepo.created))
	}
}

func TestCreateDefaultDataContinuesPastFailures(t *testing.T) {
	semRepo := &mockSemesterRepo{
		createErrFn: func(name string) error {
			if name == "Third" {
				return errors.New("insert failed")
			}
			return nil
		},
	}
	courseRepo := &mockCourseRepo{}
	repos := &repositories.Repositories{
		SemesterRepository: semRepo,
		CourseRepository:   courseRepo,
	}

	err := CreateDefaultData(context.Background(), repos, nil, zerolog.Nop())
	if err == nil {
		t.Fatal("expected the joined error to surface")
	}
	if len(semRepo.created) != 7 {
		t.Errorf("expected the remaining semesters created, got %d", len(semRepo.created))
	}
	// A failed semester drags its two courses down with it.
	if len(courseRepo.created) != 12 {
		t.Errorf("expected the remaining courses created, got %d", len(courseRepo.created))
	}
	for _, course := range courseRepo.created {
		if course.SemesterNumber == 3 {
			t.Errorf("course %q belongs to the failed semester and should not be created", course.Name)
		}
	}
}
