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

// IdentityRepository handles auth identity database operations
type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) (string, error)
	FindByID(ctx context.Context, id string) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	Delete(ctx context.Context, id string) error
}

// PostgresIdentityRepository is the pgx-backed IdentityRepository
type PostgresIdentityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresIdentityRepository creates a new PostgresIdentityRepository
func NewPostgresIdentityRepository(db *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new identity and returns the generated ID
func (r *PostgresIdentityRepository) Create(ctx context.Context, identity *models.Identity) (string, error) {
	sql, args, err := r.sb.Insert("auth_identities").
		Columns("email", "password_hash", "role", "created_at").
		Values(identity.Email, identity.PasswordHash, identity.Role, identity.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create identity query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create identity query")
		return "", fmt.Errorf("error creating identity: %w", err)
	}

	return id, nil
}

// FindByID retrieves an identity by ID. Returns (nil, nil) when absent.
func (r *PostgresIdentityRepository) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByEmail retrieves an identity by email. Returns (nil, nil) when absent.
func (r *PostgresIdentityRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *PostgresIdentityRepository) findOne(ctx context.Context, pred squirrel.Eq) (*models.Identity, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "role", "created_at").
		From("auth_identities").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find identity query: %w", err)
	}

	identity := &models.Identity{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Role, &identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error scanning identity row")
		return nil, fmt.Errorf("error finding identity: %w", err)
	}

	return identity, nil
}

// Delete removes an identity by ID
func (r *PostgresIdentityRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("auth_identities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete identity query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("identityID", id).Msg("Error executing delete identity query")
		return fmt.Errorf("error deleting identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
