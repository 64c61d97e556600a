package enrollmentRoutes

import (
	controllers "tutorme/controllers/enrollment"
	"tutorme/middleware"
	"tutorme/models"
	validators "tutorme/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up all enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	group := app.Group("/enrollments")

	// Settlement
	group.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CreateEnrollment(), controllers.EnrollInCourse)

	// Listing
	group.Get("/my-enrollments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.GetMyEnrollments)
	group.Get("/tutor-enrollments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTutor), controllers.GetTutorEnrollments)

	// Administrative
	group.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), controllers.GetEnrollments)
	group.Get("/:id", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.GetEnrollmentByID)
	group.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.EnrollmentID(), validators.UpdateEnrollment(), controllers.UpdateEnrollment)
	group.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.EnrollmentID(), controllers.DeleteEnrollment)
}
