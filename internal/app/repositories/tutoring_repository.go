package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
)

var (
	sessionColumns = []string{
		"id", "tutor_id", "course_id", "title", "description", "price",
		"what_they_will_learn", "image_url", "created_at", "updated_at",
	}
	materialColumns = []string{
		"id", "tutoring_id", "title", "description", "type", "url",
		"size", "uploaded_by", "created_at", "updated_at",
	}
	reviewColumns = []string{
		"id", "tutoring_id", "student_id", "rating", "comment", "likes",
		"created_at", "updated_at",
	}
	availableTimeColumns = []string{
		"id", "tutoring_id", "day_of_week", "start_time", "end_time",
		"created_at", "updated_at",
	}
)

// TutoringRepository handles the tutoring session aggregate: the session row
// plus its materials, reviews and weekly availability.
type TutoringRepository interface {
	CreateSession(ctx context.Context, session *models.TutoringSession) (string, error)
	FindAllSessions(ctx context.Context) ([]*models.TutoringSession, error)
	FindSessionsByTutor(ctx context.Context, tutorID string) ([]*models.TutoringSession, error)
	FindSessionsByCourse(ctx context.Context, courseID string) ([]*models.TutoringSession, error)
	FindSessionByID(ctx context.Context, id string) (*models.TutoringSession, error)
	SessionExists(ctx context.Context, id string) (bool, error)
	UpdateSession(ctx context.Context, id string, update *models.TutoringSessionUpdate) error
	DeleteSession(ctx context.Context, id string) error

	AddMaterial(ctx context.Context, material *models.TutoringMaterial) (string, error)
	FindMaterials(ctx context.Context, tutoringID string) ([]*models.TutoringMaterial, error)
	FindMaterialByID(ctx context.Context, id string) (*models.TutoringMaterial, error)
	UpdateMaterial(ctx context.Context, id string, update *models.TutoringMaterialUpdate) error
	DeleteMaterial(ctx context.Context, id string) error

	AddReview(ctx context.Context, review *models.TutoringReview) (string, error)
	FindReviews(ctx context.Context, tutoringID string) ([]*models.TutoringReview, error)
	FindReviewByID(ctx context.Context, id string) (*models.TutoringReview, error)
	UpdateReview(ctx context.Context, id string, update *models.TutoringReviewUpdate) error
	DeleteReview(ctx context.Context, id string) error

	AddAvailableTime(ctx context.Context, slot *models.TutoringAvailableTime) (string, error)
	FindAvailableTimes(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error)
	FindAvailableTimeByID(ctx context.Context, id string) (*models.TutoringAvailableTime, error)
	UpdateAvailableTime(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) error
	DeleteAvailableTime(ctx context.Context, id string) error
}

// PostgresTutoringRepository is the pgx-backed TutoringRepository
type PostgresTutoringRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresTutoringRepository creates a new PostgresTutoringRepository
func NewPostgresTutoringRepository(db *pgxpool.Pool) *PostgresTutoringRepository {
	return &PostgresTutoringRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSession(row pgx.Row) (*models.TutoringSession, error) {
	s := &models.TutoringSession{}
	err := row.Scan(
		&s.ID, &s.TutorID, &s.CourseID, &s.Title, &s.Description, &s.Price,
		&s.WhatTheyWillLearn, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanMaterial(row pgx.Row) (*models.TutoringMaterial, error) {
	m := &models.TutoringMaterial{}
	err := row.Scan(
		&m.ID, &m.TutoringID, &m.Title, &m.Description, &m.Type, &m.URL,
		&m.Size, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func scanReview(row pgx.Row) (*models.TutoringReview, error) {
	rv := &models.TutoringReview{}
	err := row.Scan(
		&rv.ID, &rv.TutoringID, &rv.StudentID, &rv.Rating, &rv.Comment, &rv.Likes,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func scanAvailableTime(row pgx.Row) (*models.TutoringAvailableTime, error) {
	t := &models.TutoringAvailableTime{}
	err := row.Scan(
		&t.ID, &t.TutoringID, &t.DayOfWeek, &t.StartTime, &t.EndTime,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateSession inserts the session row only. Nested collections are added
// one item at a time by the service.
func (r *PostgresTutoringRepository) CreateSession(ctx context.Context, session *models.TutoringSession) (string, error) {
	learn := session.WhatTheyWillLearn
	if learn == nil {
		learn = []string{}
	}

	sql, args, err := r.sb.Insert("tutoring_sessions").
		Columns("tutor_id", "course_id", "title", "description", "price",
			"what_they_will_learn", "image_url", "created_at", "updated_at").
		Values(session.TutorID, session.CourseID, session.Title, session.Description,
			session.Price, learn, session.ImageURL, session.CreatedAt, session.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create session query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create session query")
		return "", fmt.Errorf("error creating tutoring session: %w", err)
	}

	return id, nil
}

// FindAllSessions retrieves all sessions with their nested collections
func (r *PostgresTutoringRepository) FindAllSessions(ctx context.Context) ([]*models.TutoringSession, error) {
	return r.findSessions(ctx, nil)
}

// FindSessionsByTutor retrieves a tutor's sessions with nested collections
func (r *PostgresTutoringRepository) FindSessionsByTutor(ctx context.Context, tutorID string) ([]*models.TutoringSession, error) {
	return r.findSessions(ctx, squirrel.Eq{"tutor_id": tutorID})
}

// FindSessionsByCourse retrieves a course's sessions with nested collections
func (r *PostgresTutoringRepository) FindSessionsByCourse(ctx context.Context, courseID string) ([]*models.TutoringSession, error) {
	return r.findSessions(ctx, squirrel.Eq{"course_id": courseID})
}

func (r *PostgresTutoringRepository) findSessions(ctx context.Context, pred squirrel.Eq) ([]*models.TutoringSession, error) {
	builder := r.sb.Select(sessionColumns...).
		From("tutoring_sessions").
		OrderBy("created_at DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list sessions query")
		return nil, fmt.Errorf("error querying tutoring sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.TutoringSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, s := range sessions {
		s := s
		g.Go(func() error {
			return r.loadCollections(gctx, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// FindSessionByID retrieves the full aggregate. Returns (nil, nil) when the
// session row is absent.
func (r *PostgresTutoringRepository) FindSessionByID(ctx context.Context, id string) (*models.TutoringSession, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("tutoring_sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find session query: %w", err)
	}

	s, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("tutoringID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error finding tutoring session: %w", err)
	}

	if err := r.loadCollections(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// loadCollections fills the session's materials, reviews and availability in
// parallel.
func (r *PostgresTutoringRepository) loadCollections(ctx context.Context, s *models.TutoringSession) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		materials, err := r.FindMaterials(gctx, s.ID)
		if err != nil {
			return err
		}
		s.Materials = materials
		return nil
	})
	g.Go(func() error {
		reviews, err := r.FindReviews(gctx, s.ID)
		if err != nil {
			return err
		}
		s.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		times, err := r.FindAvailableTimes(gctx, s.ID)
		if err != nil {
			return err
		}
		s.AvailableTimes = times
		return nil
	})

	return g.Wait()
}

// SessionExists reports whether a session row exists
func (r *PostgresTutoringRepository) SessionExists(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("tutoring_sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build session exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking session existence: %w", err)
	}

	return true, nil
}

// UpdateSession applies the non-nil fields of the update to the session row
func (r *PostgresTutoringRepository) UpdateSession(ctx context.Context, id string, update *models.TutoringSessionUpdate) error {
	builder := r.sb.Update("tutoring_sessions")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.CourseID != nil {
		builder = builder.Set("course_id", *update.CourseID)
	}
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Price != nil {
		builder = builder.Set("price", *update.Price)
	}
	if update.WhatTheyWillLearn != nil {
		builder = builder.Set("what_they_will_learn", update.WhatTheyWillLearn)
	}
	if update.ImageURL != nil {
		builder = builder.Set("image_url", *update.ImageURL)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", id).Msg("Error executing update session query")
		return fmt.Errorf("error updating tutoring session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// DeleteSession removes a session. Nested rows cascade with it.
func (r *PostgresTutoringRepository) DeleteSession(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tutoring_sessions", id)
}

func (r *PostgresTutoringRepository) deleteByID(ctx context.Context, table, id string) error {
	sql, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query for %s: %w", table, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Str("id", id).Msg("Error executing delete query")
		return fmt.Errorf("error deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// AddMaterial inserts a material row and returns the generated ID
func (r *PostgresTutoringRepository) AddMaterial(ctx context.Context, material *models.TutoringMaterial) (string, error) {
	sql, args, err := r.sb.Insert("tutoring_materials").
		Columns("tutoring_id", "title", "description", "type", "url", "size", "uploaded_by",
			"created_at", "updated_at").
		Values(material.TutoringID, material.Title, material.Description, material.Type,
			material.URL, material.Size, material.UploadedBy,
			material.CreatedAt, material.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build add material query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", material.TutoringID).Msg("Error executing add material query")
		return "", fmt.Errorf("error adding material: %w", err)
	}

	return id, nil
}

// FindMaterials retrieves the materials of a session
func (r *PostgresTutoringRepository) FindMaterials(ctx context.Context, tutoringID string) ([]*models.TutoringMaterial, error) {
	sql, args, err := r.sb.Select(materialColumns...).
		From("tutoring_materials").
		Where(squirrel.Eq{"tutoring_id": tutoringID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list materials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", tutoringID).Msg("Error executing list materials query")
		return nil, fmt.Errorf("error querying materials: %w", err)
	}
	defer rows.Close()

	materials := []*models.TutoringMaterial{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}

	return materials, nil
}

// FindMaterialByID retrieves a material by ID. Returns (nil, nil) when absent.
func (r *PostgresTutoringRepository) FindMaterialByID(ctx context.Context, id string) (*models.TutoringMaterial, error) {
	sql, args, err := r.sb.Select(materialColumns...).
		From("tutoring_materials").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find material query: %w", err)
	}

	m, err := scanMaterial(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("materialID", id).Msg("Error scanning material row")
		return nil, fmt.Errorf("error finding material: %w", err)
	}

	return m, nil
}

// UpdateMaterial applies the non-nil fields of the update
func (r *PostgresTutoringRepository) UpdateMaterial(ctx context.Context, id string, update *models.TutoringMaterialUpdate) error {
	builder := r.sb.Update("tutoring_materials")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Type != nil {
		builder = builder.Set("type", *update.Type)
	}
	if update.URL != nil {
		builder = builder.Set("url", *update.URL)
	}
	if update.Size != nil {
		builder = builder.Set("size", *update.Size)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update material query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("materialID", id).Msg("Error executing update material query")
		return fmt.Errorf("error updating material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// DeleteMaterial removes a material by ID
func (r *PostgresTutoringRepository) DeleteMaterial(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tutoring_materials", id)
}

// AddReview inserts a review row and returns the generated ID
func (r *PostgresTutoringRepository) AddReview(ctx context.Context, review *models.TutoringReview) (string, error) {
	sql, args, err := r.sb.Insert("tutoring_reviews").
		Columns("tutoring_id", "student_id", "rating", "comment", "likes",
			"created_at", "updated_at").
		Values(review.TutoringID, review.StudentID, review.Rating, review.Comment, review.Likes,
			review.CreatedAt, review.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build add review query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", review.TutoringID).Msg("Error executing add review query")
		return "", fmt.Errorf("error adding review: %w", err)
	}

	return id, nil
}

// FindReviews retrieves the reviews of a session, newest first
func (r *PostgresTutoringRepository) FindReviews(ctx context.Context, tutoringID string) ([]*models.TutoringReview, error) {
	sql, args, err := r.sb.Select(reviewColumns...).
		From("tutoring_reviews").
		Where(squirrel.Eq{"tutoring_id": tutoringID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", tutoringID).Msg("Error executing list reviews query")
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.TutoringReview{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

// FindReviewByID retrieves a review by ID. Returns (nil, nil) when absent.
func (r *PostgresTutoringRepository) FindReviewByID(ctx context.Context, id string) (*models.TutoringReview, error) {
	sql, args, err := r.sb.Select(reviewColumns...).
		From("tutoring_reviews").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find review query: %w", err)
	}

	rv, err := scanReview(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("reviewID", id).Msg("Error scanning review row")
		return nil, fmt.Errorf("error finding review: %w", err)
	}

	return rv, nil
}

// UpdateReview applies the non-nil fields of the update
func (r *PostgresTutoringRepository) UpdateReview(ctx context.Context, id string, update *models.TutoringReviewUpdate) error {
	builder := r.sb.Update("tutoring_reviews")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.Rating != nil {
		builder = builder.Set("rating", *update.Rating)
	}
	if update.Comment != nil {
		builder = builder.Set("comment", *update.Comment)
	}
	if update.Likes != nil {
		builder = builder.Set("likes", *update.Likes)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update review query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reviewID", id).Msg("Error executing update review query")
		return fmt.Errorf("error updating review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// DeleteReview removes a review by ID
func (r *PostgresTutoringRepository) DeleteReview(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tutoring_reviews", id)
}

// AddAvailableTime inserts a weekly slot and returns the generated ID
func (r *PostgresTutoringRepository) AddAvailableTime(ctx context.Context, slot *models.TutoringAvailableTime) (string, error) {
	sql, args, err := r.sb.Insert("tutoring_available_times").
		Columns("tutoring_id", "day_of_week", "start_time", "end_time",
			"created_at", "updated_at").
		Values(slot.TutoringID, slot.DayOfWeek, slot.StartTime, slot.EndTime,
			slot.CreatedAt, slot.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build add available time query: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", slot.TutoringID).Msg("Error executing add available time query")
		return "", fmt.Errorf("error adding available time: %w", err)
	}

	return id, nil
}

// FindAvailableTimes retrieves the weekly slots of a session ordered by day
// and start time
func (r *PostgresTutoringRepository) FindAvailableTimes(ctx context.Context, tutoringID string) ([]*models.TutoringAvailableTime, error) {
	sql, args, err := r.sb.Select(availableTimeColumns...).
		From("tutoring_available_times").
		Where(squirrel.Eq{"tutoring_id": tutoringID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list available times query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tutoringID", tutoringID).Msg("Error executing list available times query")
		return nil, fmt.Errorf("error querying available times: %w", err)
	}
	defer rows.Close()

	times := []*models.TutoringAvailableTime{}
	for rows.Next() {
		t, err := scanAvailableTime(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning available time row: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating available time rows: %w", err)
	}

	return times, nil
}

// FindAvailableTimeByID retrieves a slot by ID. Returns (nil, nil) when absent.
func (r *PostgresTutoringRepository) FindAvailableTimeByID(ctx context.Context, id string) (*models.TutoringAvailableTime, error) {
	sql, args, err := r.sb.Select(availableTimeColumns...).
		From("tutoring_available_times").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find available time query: %w", err)
	}

	t, err := scanAvailableTime(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("availableTimeID", id).Msg("Error scanning available time row")
		return nil, fmt.Errorf("error finding available time: %w", err)
	}

	return t, nil
}

// UpdateAvailableTime applies the non-nil fields of the update
func (r *PostgresTutoringRepository) UpdateAvailableTime(ctx context.Context, id string, update *models.TutoringAvailableTimeUpdate) error {
	builder := r.sb.Update("tutoring_available_times")
	if update.UpdatedAt != nil {
		builder = builder.Set("updated_at", *update.UpdatedAt)
	}

	if update.DayOfWeek != nil {
		builder = builder.Set("day_of_week", *update.DayOfWeek)
	}
	if update.StartTime != nil {
		builder = builder.Set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		builder = builder.Set("end_time", *update.EndTime)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update available time query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("availableTimeID", id).Msg("Error executing update available time query")
		return fmt.Errorf("error updating available time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// DeleteAvailableTime removes a slot by ID
func (r *PostgresTutoringRepository) DeleteAvailableTime(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tutoring_available_times", id)
}
