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

var courseColumns = []string{"id", "name", "semester_number", "created_at", "updated_at"}

// CourseRepository handles course database operations
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (string, error)
	FindAll(ctx context.Context, semesterNumber *int) ([]*models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, id string, update *models.CourseUpdate) error
	Delete(ctx context.Context, id string) error
}

// PostgresCourseRepository is the pgx-backed CourseRepository
type PostgresCourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresCourseRepository creates a new PostgresCourseRepository
func NewPostgresCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.SemesterNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course and returns the generated ID
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) (string, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "semester_number", "created_at", "updated_at").
		Values(course.Name, course.SemesterNumber, course.CreatedAt, course.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create course query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", apperrors.ErrConflict
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return "", fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// FindAll retrieves courses, optionally filtered by semester number
func (r *PostgresCourseRepository) FindAll(ctx context.Context, semesterNumber *int) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("semester_number ASC", "name ASC")
	if semesterNumber != nil {
		builder = builder.Where(squirrel.Eq{"semester_number": *semesterNumber})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// FindByID retrieves a course by ID. Returns (nil, nil) when absent.
func (r *PostgresCourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error finding course: %w", err)
	}

	return c, nil
}

// Update applies the non-nil fields of the update to the stored course
func (r *PostgresCourseRepository) Update(ctx context.Context, id string, update *models.CourseUpdate) error {
	builder := r.sb.Update("courses")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.SemesterNumber != nil {
		builder = builder.Set("semester_number", *update.SemesterNumber)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete removes a course by ID
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
