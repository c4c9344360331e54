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

var membershipColumns = []string{"id", "user_id", "type", "status", "payment_proof", "created_at"}

// MembershipRepository handles membership database operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) (string, error)
	FindAll(ctx context.Context) ([]*models.Membership, error)
	FindByID(ctx context.Context, id string) (*models.Membership, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Membership, error)
	FindCurrentByUser(ctx context.Context, userID string) (*models.Membership, error)
	UpdateStatus(ctx context.Context, id string, status models.MembershipStatus) error
	Delete(ctx context.Context, id string) error
}

// PostgresMembershipRepository is the pgx-backed MembershipRepository
type PostgresMembershipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresMembershipRepository creates a new PostgresMembershipRepository
func NewPostgresMembershipRepository(db *pgxpool.Pool) *PostgresMembershipRepository {
	return &PostgresMembershipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMembership(row pgx.Row) (*models.Membership, error) {
	m := &models.Membership{}
	err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.Status, &m.PaymentProof, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a new membership and returns the generated ID
func (r *PostgresMembershipRepository) Create(ctx context.Context, membership *models.Membership) (string, error) {
	sql, args, err := r.sb.Insert("memberships").
		Columns("user_id", "type", "status", "payment_proof", "created_at").
		Values(membership.UserID, membership.Type, membership.Status, membership.PaymentProof,
			membership.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create membership query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create membership query")
		return "", fmt.Errorf("error creating membership: %w", err)
	}

	return id, nil
}

// FindAll retrieves all memberships, newest first
func (r *PostgresMembershipRepository) FindAll(ctx context.Context) ([]*models.Membership, error) {
	return r.findMany(ctx, nil)
}

// FindByUser retrieves all memberships of a user, newest first
func (r *PostgresMembershipRepository) FindByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return r.findMany(ctx, squirrel.Eq{"user_id": userID})
}

func (r *PostgresMembershipRepository) findMany(ctx context.Context, pred squirrel.Eq) ([]*models.Membership, error) {
	builder := r.sb.Select(membershipColumns...).
		From("memberships").
		OrderBy("created_at DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list memberships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list memberships query")
		return nil, fmt.Errorf("error querying memberships: %w", err)
	}
	defer rows.Close()

	memberships := []*models.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return memberships, nil
}

// FindByID retrieves a membership by ID. Returns (nil, nil) when absent.
func (r *PostgresMembershipRepository) FindByID(ctx context.Context, id string) (*models.Membership, error) {
	sql, args, err := r.sb.Select(membershipColumns...).
		From("memberships").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find membership query: %w", err)
	}

	m, err := scanMembership(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("membershipID", id).Msg("Error scanning membership row")
		return nil, fmt.Errorf("error finding membership: %w", err)
	}

	return m, nil
}

// FindCurrentByUser retrieves the user's most recent membership. Returns
// (nil, nil) when the user has none.
func (r *PostgresMembershipRepository) FindCurrentByUser(ctx context.Context, userID string) (*models.Membership, error) {
	sql, args, err := r.sb.Select(membershipColumns...).
		From("memberships").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build current membership query: %w", err)
	}

	m, err := scanMembership(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error scanning current membership row")
		return nil, fmt.Errorf("error finding current membership: %w", err)
	}

	return m, nil
}

// UpdateStatus changes the review status of a membership
func (r *PostgresMembershipRepository) UpdateStatus(ctx context.Context, id string, status models.MembershipStatus) error {
	sql, args, err := r.sb.Update("memberships").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update membership status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("membershipID", id).Msg("Error executing update membership status query")
		return fmt.Errorf("error updating membership status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete removes a membership by ID
func (r *PostgresMembershipRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("memberships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete membership query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("membershipID", id).Msg("Error executing delete membership query")
		return fmt.Errorf("error deleting membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
