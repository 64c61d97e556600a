package sessionValidator

import (
	"tutorme/middleware"

	"github.com/gofiber/fiber/v2"
)

// LessonID validates the :lessonId route param shared by all session routes
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("lessonId")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}
		c.Locals("lessonID", uint(id))
		return c.Next()
	}
}
