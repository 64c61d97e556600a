package notificationController

import (
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	"tutorme/notifier"
	notificationValidator "tutorme/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the caller's 20 most recent notifications,
// newest first
func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(20).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkAllRead flags every notification of the caller as read
func MarkAllRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := notifier.Default().MarkAllRead(userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications marked as read", nil)
}

// SendCourseNotification broadcasts a message from a tutor to every
// student enrolled in one of their courses
func SendCourseNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseMessage").(*notificationValidator.CourseMessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Verify the tutor owns this course
	var tutor models.Tutor
	if err := db.Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only tutors can send course notifications!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND tutor_id = ?", courseID, tutor.ID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course not found or you don't have permission!", nil)
	}

	result, err := notifier.Default().SendCourseNotification(course.ID, tutor.ID, reqData.Message)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, result.Message, result)
}
