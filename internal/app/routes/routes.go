package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcastro/tutormatch/internal/app/controllers"
	"github.com/rcastro/tutormatch/internal/middleware"
	"github.com/rcastro/tutormatch/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	courseController *controllers.CourseController,
	semesterController *controllers.SemesterController,
	membershipController *controllers.MembershipController,
	tutoringController *controllers.TutoringController,
	storageController *controllers.StorageController,
	authMiddleware *middleware.AuthMiddleware,
	gatherer prometheus.Gatherer,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Everything below requires a valid bearer token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", authController.Logout)

	profiles := authenticated.Group("/profiles")
	{
		profiles.POST("", profileController.CreateProfile)
		profiles.GET("", profileController.GetAllProfiles)
		profiles.GET("/email/:email", profileController.GetProfileByEmail)
		profiles.GET("/:id", profileController.GetProfileByID)
		profiles.PATCH("/:id", profileController.UpdateProfile)
		profiles.DELETE("/:id", profileController.DeleteProfile)
	}

	courses := authenticated.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.PATCH("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	semesters := authenticated.Group("/semesters")
	{
		semesters.POST("", semesterController.CreateSemester)
		semesters.GET("", semesterController.GetAllSemesters)
		semesters.GET("/:id", semesterController.GetSemesterByID)
		semesters.PATCH("/:id", semesterController.UpdateSemester)
		semesters.DELETE("/:id", semesterController.DeleteSemester)
		semesters.GET("/:id/courses", semesterController.GetCourses)
		semesters.POST("/:id/courses", semesterController.AddCourse)
		semesters.DELETE("/:id/courses/:courseId", semesterController.RemoveCourse)
	}

	memberships := authenticated.Group("/memberships")
	{
		memberships.POST("", membershipController.CreateMembership)
		memberships.GET("", membershipController.GetAllMemberships)
		memberships.GET("/user/:userId", membershipController.GetMembershipsByUser)
		memberships.GET("/user/:userId/current", membershipController.GetCurrentMembership)
		memberships.GET("/:id", membershipController.GetMembershipByID)
		memberships.PATCH("/:id/status", membershipController.UpdateMembershipStatus)
		memberships.DELETE("/:id", membershipController.DeleteMembership)
	}

	tutoring := authenticated.Group("/tutoring-sessions")
	{
		tutoring.POST("", tutoringController.CreateSession)
		tutoring.GET("", tutoringController.GetAllSessions)
		tutoring.GET("/tutor/:tutorId", tutoringController.GetSessionsByTutor)
		tutoring.GET("/course/:courseId", tutoringController.GetSessionsByCourse)
		tutoring.GET("/:id", tutoringController.GetSessionByID)
		tutoring.PATCH("/:id", tutoringController.UpdateSession)
		tutoring.DELETE("/:id", tutoringController.DeleteSession)

		tutoring.POST("/:id/materials", tutoringController.AddMaterial)
		tutoring.GET("/:id/materials", tutoringController.GetMaterials)
		tutoring.PATCH("/:id/materials/:materialId", tutoringController.UpdateMaterial)
		tutoring.DELETE("/:id/materials/:materialId", tutoringController.DeleteMaterial)

		tutoring.POST("/:id/reviews", tutoringController.AddReview)
		tutoring.GET("/:id/reviews", tutoringController.GetReviews)
		tutoring.PATCH("/:id/reviews/:reviewId", tutoringController.UpdateReview)
		tutoring.DELETE("/:id/reviews/:reviewId", tutoringController.DeleteReview)

		tutoring.POST("/:id/available-times", tutoringController.AddAvailableTime)
		tutoring.GET("/:id/available-times", tutoringController.GetAvailableTimes)
		tutoring.PATCH("/:id/available-times/:timeId", tutoringController.UpdateAvailableTime)
		tutoring.DELETE("/:id/available-times/:timeId", tutoringController.DeleteAvailableTime)
	}

	storage := authenticated.Group("/storage")
	{
		storage.POST("/avatars", storageController.UploadAvatar)
		storage.GET("/avatars/:userId/:fileName", storageController.GetAvatarURL)
		storage.DELETE("/avatars/:userId/:fileName", storageController.DeleteAvatar)

		storage.POST("/payment-proofs", storageController.UploadPaymentProof)
		storage.GET("/payment-proofs/:userId/:fileName", storageController.GetPaymentProofURL)
		storage.DELETE("/payment-proofs/:userId/:fileName", storageController.DeletePaymentProof)

		storage.POST("/tutoring-images", storageController.UploadTutoringImage)
		storage.GET("/tutoring-images/:tutoringId/:fileName", storageController.GetTutoringImageURL)
		storage.DELETE("/tutoring-images/:tutoringId/:fileName", storageController.DeleteTutoringImage)
	}
}
