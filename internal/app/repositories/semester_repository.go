package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
)

// SemesterRepository handles semester database operations, including the
// semester/course link table.
type SemesterRepository interface {
	Create(ctx context.Context, semester *models.Semester) (string, error)
	FindAll(ctx context.Context) ([]*models.Semester, error)
	FindByID(ctx context.Context, id string) (*models.Semester, error)
	Update(ctx context.Context, id string, update *models.SemesterUpdate) error
	Delete(ctx context.Context, id string) error
	AddCourse(ctx context.Context, semesterID, courseID string) error
	RemoveCourse(ctx context.Context, semesterID, courseID string) error
	ListCourses(ctx context.Context, semesterID string) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)
}

// PostgresSemesterRepository is the pgx-backed SemesterRepository
type PostgresSemesterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresSemesterRepository creates a new PostgresSemesterRepository
func NewPostgresSemesterRepository(db *pgxpool.Pool) *PostgresSemesterRepository {
	return &PostgresSemesterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new semester and returns the generated ID
func (r *PostgresSemesterRepository) Create(ctx context.Context, semester *models.Semester) (string, error) {
	sql, args, err := r.sb.Insert("semesters").
		Columns("name", "created_at", "updated_at").
		Values(semester.Name, semester.CreatedAt, semester.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create semester query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", apperrors.ErrConflict
		}
		logger.Error().Err(err).Msg("Error executing create semester query")
		return "", fmt.Errorf("error creating semester: %w", err)
	}

	return id, nil
}

// FindAll retrieves all semesters with their linked courses
func (r *PostgresSemesterRepository) FindAll(ctx context.Context) ([]*models.Semester, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at", "updated_at").
		From("semesters").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list semesters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list semesters query")
		return nil, fmt.Errorf("error querying semesters: %w", err)
	}
	defer rows.Close()

	semesters := []*models.Semester{}
	for rows.Next() {
		s := &models.Semester{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semester rows: %w", err)
	}

	for _, s := range semesters {
		courses, err := r.ListCourses(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Courses = courses
	}

	return semesters, nil
}

// FindByID retrieves a semester with its linked courses. Returns (nil, nil)
// when absent.
func (r *PostgresSemesterRepository) FindByID(ctx context.Context, id string) (*models.Semester, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at", "updated_at").
		From("semesters").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find semester query: %w", err)
	}

	s := &models.Semester{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("semesterID", id).Msg("Error scanning semester row")
		return nil, fmt.Errorf("error finding semester: %w", err)
	}

	courses, err := r.ListCourses(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Courses = courses

	return s, nil
}

// Update applies the non-nil fields of the update to the stored semester
func (r *PostgresSemesterRepository) Update(ctx context.Context, id string, update *models.SemesterUpdate) error {
	builder := r.sb.Update("semesters")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update semester query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("semesterID", id).Msg("Error executing update semester query")
		return fmt.Errorf("error updating semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete removes a semester by ID. Course links go with it.
func (r *PostgresSemesterRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("semesters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete semester query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("semesterID", id).Msg("Error executing delete semester query")
		return fmt.Errorf("error deleting semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// AddCourse links a course to a semester
func (r *PostgresSemesterRepository) AddCourse(ctx context.Context, semesterID, courseID string) error {
	sql, args, err := r.sb.Insert("semester_courses").
		Columns("semester_id", "course_id").
		Values(semesterID, courseID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link course query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Str("semesterID", semesterID).Str("courseID", courseID).
			Msg("Error executing link course query")
		return fmt.Errorf("error linking course to semester: %w", err)
	}

	return nil
}

// RemoveCourse unlinks a course from a semester
func (r *PostgresSemesterRepository) RemoveCourse(ctx context.Context, semesterID, courseID string) error {
	sql, args, err := r.sb.Delete("semester_courses").
		Where(squirrel.Eq{"semester_id": semesterID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unlink course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("semesterID", semesterID).Str("courseID", courseID).
			Msg("Error executing unlink course query")
		return fmt.Errorf("error unlinking course from semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// ListCourses retrieves the courses linked to a semester
func (r *PostgresSemesterRepository) ListCourses(ctx context.Context, semesterID string) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.name", "c.semester_number", "c.created_at", "c.updated_at").
		From("courses c").
		Join("semester_courses sc ON sc.course_id = c.id").
		Where(squirrel.Eq{"sc.semester_id": semesterID}).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list semester courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("semesterID", semesterID).Msg("Error executing list semester courses query")
		return nil, fmt.Errorf("error querying semester courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning semester course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semester course rows: %w", err)
	}

	return courses, nil
}

// Count returns the number of semesters. The seeder uses this to decide
// whether the catalog was already bootstrapped.
func (r *PostgresSemesterRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("semesters").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count semesters query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting semesters: %w", err)
	}

	return count, nil
}
