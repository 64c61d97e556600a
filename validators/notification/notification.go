package notificationValidator

import (
	"tutorme/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseMessageRequest is the body of a course-wide broadcast
type CourseMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=500"`
}

// CourseMessage validates the course notification body and course id param
func CourseMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("courseId")
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(CourseMessageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := map[string]string{"message": "Message is required and must be at most 500 characters!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("validatedCourseMessage", reqData)
		return c.Next()
	}
}
