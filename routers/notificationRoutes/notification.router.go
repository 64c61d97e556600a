package notificationRoutes

import (
	controllers "tutorme/controllers/notification"
	"tutorme/middleware"
	"tutorme/models"
	validators "tutorme/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up all notification routes
func SetupNotificationRoutes(app *fiber.App) {
	group := app.Group("/notifications")

	group.Get("/", middleware.JWTMiddleware, controllers.GetNotifications)
	group.Put("/mark-read", middleware.JWTMiddleware, controllers.MarkAllRead)
	group.Post("/course/:courseId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTutor), validators.CourseMessage(), controllers.SendCourseNotification)
}
