package sessionRoutes

import (
	controllers "tutorme/controllers/session"
	"tutorme/middleware"
	validators "tutorme/validators/session"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionRoutes sets up all session lifecycle routes
func SetupSessionRoutes(app *fiber.App) {
	group := app.Group("/sessions")

	group.Put("/start/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.StartSession)
	group.Put("/end/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.EndSession)
	group.Put("/join/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.JoinSession)

	group.Get("/room/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.GetSessionRoom)
	group.Get("/jaas-token/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.GetJaaSToken)

	group.Get("/tutor", middleware.JWTMiddleware, controllers.GetTutorSessions)
	group.Get("/student", middleware.JWTMiddleware, controllers.GetStudentSessions)
}
