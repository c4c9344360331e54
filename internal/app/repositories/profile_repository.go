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

var profileColumns = []string{
	"id", "email", "first_name", "last_name", "gender", "role",
	"semester_number", "academic_year", "avatar", "bio", "phone",
	"status", "tutor_id", "created_at", "updated_at",
}

// ProfileRepository handles user profile database operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindAll(ctx context.Context) ([]*models.Profile, error)
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, id string, update *models.ProfileUpdate) error
	Delete(ctx context.Context, id string) error
}

// PostgresProfileRepository is the pgx-backed ProfileRepository
type PostgresProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Gender, &p.Role,
		&p.SemesterNumber, &p.AcademicYear, &p.Avatar, &p.Bio, &p.Phone,
		&p.Status, &p.TutorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new profile. The ID is the owning auth identity's ID.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("id", "email", "first_name", "last_name", "gender", "role",
			"semester_number", "academic_year", "avatar", "bio", "phone",
			"status", "tutor_id", "created_at", "updated_at").
		Values(profile.ID, profile.Email, profile.FirstName, profile.LastName,
			profile.Gender, profile.Role, profile.SemesterNumber, profile.AcademicYear,
			profile.Avatar, profile.Bio, profile.Phone, profile.Status, profile.TutorID,
			profile.CreatedAt, profile.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Msg("Error executing create profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// FindAll retrieves all profiles ordered by creation time
func (r *PostgresProfileRepository) FindAll(ctx context.Context) ([]*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list profiles query")
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

// FindByID retrieves a profile by ID. Returns (nil, nil) when absent.
func (r *PostgresProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByEmail retrieves a profile by email. Returns (nil, nil) when absent.
func (r *PostgresProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *PostgresProfileRepository) findOne(ctx context.Context, pred squirrel.Eq) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error finding profile: %w", err)
	}

	return p, nil
}

// Update applies the non-nil fields of the update to the stored profile
func (r *PostgresProfileRepository) Update(ctx context.Context, id string, update *models.ProfileUpdate) error {
	builder := r.sb.Update("profiles")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
	}
	if update.Gender != nil {
		builder = builder.Set("gender", *update.Gender)
	}
	if update.Role != nil {
		builder = builder.Set("role", *update.Role)
	}
	if update.SemesterNumber != nil {
		builder = builder.Set("semester_number", *update.SemesterNumber)
	}
	if update.AcademicYear != nil {
		builder = builder.Set("academic_year", *update.AcademicYear)
	}
	if update.Avatar != nil {
		builder = builder.Set("avatar", *update.Avatar)
	}
	if update.Bio != nil {
		builder = builder.Set("bio", *update.Bio)
	}
	if update.Phone != nil {
		builder = builder.Set("phone", *update.Phone)
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}
	if update.TutorID != nil {
		builder = builder.Set("tutor_id", *update.TutorID)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Str("profileID", id).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete removes a profile by ID
func (r *PostgresProfileRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("profileID", id).Msg("Error executing delete profile query")
		return fmt.Errorf("error deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
