package enrollmentValidator

import (
	"tutorme/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// EnrollRequest is the typed enrollment payload. The source accepted
// shape-shifting bodies here; ambiguous shapes are rejected instead.
type EnrollRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

// CreateEnrollment validates the enroll request body
func CreateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := map[string]string{"courseId": "Course ID is required!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the :id route param
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		c.Locals("enrollmentID", uint(id))
		return c.Next()
	}
}

// UpdateEnrollmentRequest carries the mutable enrollment fields
type UpdateEnrollmentRequest struct {
	Status string `json:"status" validate:"required,oneof=enrolled completed cancelled"`
}

// UpdateEnrollment validates the status-update body
func UpdateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateEnrollmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := map[string]string{"status": "Status must be one of enrolled, completed, cancelled!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentUpdate", reqData)
		return c.Next()
	}
}
