package services

import (
	"time"

	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/auth"
	"github.com/rcastro/tutormatch/internal/pkg/filestorage"
	"github.com/rcastro/tutormatch/internal/pkg/metrics"
)

// stampNow returns the current time as a pointer for the created/updated
// stamps the services set on writes.
func stampNow() *time.Time {
	now := time.Now()
	return &now
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	ProfileService    ProfileService
	CourseService     CourseService
	SemesterService   SemesterService
	MembershipService MembershipService
	TutoringService   TutoringService
	StorageService    StorageService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.Storage,
	collector *metrics.Collector,
) (*Services, error) {
	authService := NewAuthService(repos.IdentityRepository, repos.ProfileRepository, jwtService)
	storageService, err := NewStorageService(storage, repos.ProfileRepository, repos.TutoringRepository, collector)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       authService,
		ProfileService:    NewProfileService(repos.ProfileRepository, authService),
		CourseService:     NewCourseService(repos.CourseRepository),
		SemesterService:   NewSemesterService(repos.SemesterRepository, repos.CourseRepository),
		MembershipService: NewMembershipService(repos.MembershipRepository),
		TutoringService:   NewTutoringService(repos.TutoringRepository),
		StorageService:    storageService,
	}, nil
}
