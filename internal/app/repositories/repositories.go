package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	IdentityRepository   IdentityRepository
	ProfileRepository    ProfileRepository
	CourseRepository     CourseRepository
	SemesterRepository   SemesterRepository
	MembershipRepository MembershipRepository
	TutoringRepository   TutoringRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		IdentityRepository:   NewPostgresIdentityRepository(db),
		ProfileRepository:    NewPostgresProfileRepository(db),
		CourseRepository:     NewPostgresCourseRepository(db),
		SemesterRepository:   NewPostgresSemesterRepository(db),
		MembershipRepository: NewPostgresMembershipRepository(db),
		TutoringRepository:   NewPostgresTutoringRepository(db),
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}
