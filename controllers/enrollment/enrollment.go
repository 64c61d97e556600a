package enrollmentController

import (
	"errors"
	"fmt"
	"math"

	"tutorme/config"
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	"tutorme/notifier"
	"tutorme/utils"
	enrollmentValidator "tutorme/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errInsufficientFunds = errors.New("insufficient wallet balance")

// splitPrice computes the commission split for a paid enrollment.
// The three amounts always sum back to price exactly.
func splitPrice(price int64) (platformFee, tutorEarnings int64) {
	platformFee = int64(math.Round(float64(price) * config.AppConfig.CommissionRate))
	tutorEarnings = price - platformFee
	return platformFee, tutorEarnings
}

// EnrollInCourse settles an enrollment: eligibility checks, wallet
// debit, commission split, record creation, then notification fan-out.
func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	// Caller must resolve to a student profile
	var student models.Student
	if err := db.Where("user_id = ?", userID).Preload("User").First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student profile not found!", nil)
	}

	// Retrieve validated request
	reqData, ok := c.Locals("validatedEnrollment").(*enrollmentValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if student is already enrolled. The unique index on
	// (student_id, course_id) backstops this under concurrency; the
	// lookup only exists to return the existing record's info.
	var existing models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", fiber.Map{
			"enrollmentId":  existing.ID,
			"status":        existing.Status,
			"paymentStatus": existing.PaymentStatus,
		})
	}

	enrollment := models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    models.EnrollmentStatusEnrolled,
	}

	var tutorEarnings int64

	if course.IsFree || course.Price == 0 {
		enrollment.PaymentStatus = models.PaymentStatusFree
		if err := db.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	} else {
		_, tutorEarnings = splitPrice(course.Price)

		enrollment.PaymentStatus = models.PaymentStatusPaid
		enrollment.Amount = course.Price

		// Debit, credit, enrollment row and earning row commit or roll
		// back together. The debit is a conditional atomic update so a
		// concurrent spend can never drive the balance negative.
		err := db.Transaction(func(tx *gorm.DB) error {
			debit := tx.Model(&models.Student{}).
				Where("id = ? AND wallet_balance >= ?", student.ID, course.Price).
				UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", course.Price))
			if debit.Error != nil {
				return debit.Error
			}
			if debit.RowsAffected == 0 {
				return errInsufficientFunds
			}

			if err := tx.Model(&models.Tutor{}).
				Where("id = ?", course.TutorID).
				UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", tutorEarnings)).Error; err != nil {
				return err
			}

			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}

			earning := models.Earning{
				TutorID:   course.TutorID,
				StudentID: student.ID,
				Amount:    tutorEarnings,
				Type:      models.EarningTypeCourseEnrollment,
			}
			return tx.Create(&earning).Error
		})
		if err != nil {
			if errors.Is(err, errInsufficientFunds) {
				return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Insufficient wallet balance for this course!", nil)
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	notifyEnrollment(&student, &course, &enrollment, tutorEarnings)

	// Reload the balance after the debit
	var remaining int64
	db.Model(&models.Student{}).Where("id = ?", student.ID).Pluck("wallet_balance", &remaining)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", fiber.Map{
		"enrollment":       enrollment,
		"amountPaid":       enrollment.Amount,
		"remainingBalance": remaining,
	})
}

// notifyEnrollment triggers the post-settlement fan-out: persisted
// notifications for both parties, a live course-enrollment event for
// the tutor, and receipt email/SMS for paid enrollments. Failures here
// never fail the enrollment itself.
func notifyEnrollment(student *models.Student, course *models.Course, enrollment *models.Enrollment, tutorEarnings int64) {
	db := database.Database.Db

	studentMsg := fmt.Sprintf("You have successfully enrolled in %s.", course.Title)
	if enrollment.PaymentStatus == models.PaymentStatusPaid {
		studentMsg = fmt.Sprintf("You have successfully enrolled in %s. %s was charged to your wallet.", course.Title, utils.FormatAmount(enrollment.Amount))
	}
	notifier.Send(student.UserID, studentMsg, models.NotificationTypeCourse, &notifier.Extra{CourseID: &course.ID})

	var tutor models.Tutor
	if err := db.Where("id = ?", course.TutorID).First(&tutor).Error; err != nil {
		return
	}

	tutorMsg := fmt.Sprintf("A new student enrolled in %s.", course.Title)
	tutorType := models.NotificationTypeCourse
	if enrollment.PaymentStatus == models.PaymentStatusPaid {
		tutorMsg = fmt.Sprintf("A new student enrolled in %s. You earned %s.", course.Title, utils.FormatAmount(tutorEarnings))
		tutorType = models.NotificationTypePayment
	}
	notifier.Send(tutor.UserID, tutorMsg, tutorType, &notifier.Extra{CourseID: &course.ID, TutorID: &tutor.ID})

	notifier.Push(tutor.UserID, notifier.EventCourseEnrollment, fiber.Map{
		"course":   course.Title,
		"student":  student.ID,
		"earnings": tutorEarnings,
	})

	if enrollment.PaymentStatus == models.PaymentStatusPaid {
		utils.SendEnrollmentReceipt(student.User.Email, student.User.Name, course.Title, enrollment.Amount)
		utils.SendPaymentText(student.User.Mobile, fmt.Sprintf("Your enrollment in %s is confirmed. Amount charged: %s.", course.Title, utils.FormatAmount(enrollment.Amount)))
	}
}

// GetMyEnrollments lists the calling student's enrollments with
// populated course and tutor display fields
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student profile not found!", nil)
	}

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ?", student.ID).
		Preload("Course").
		Preload("Course.Tutor").
		Preload("Course.Tutor.User").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response = append(response, fiber.Map{
			"id":            enrollment.ID,
			"status":        enrollment.Status,
			"paymentStatus": enrollment.PaymentStatus,
			"amount":        enrollment.Amount,
			"enrolledAt":    enrollment.CreatedAt,
			"course": fiber.Map{
				"id":          enrollment.Course.ID,
				"title":       enrollment.Course.Title,
				"courseImage": enrollment.Course.CourseImage,
				"price":       enrollment.Course.Price,
				"isFree":      enrollment.Course.IsFree,
				"tutor": fiber.Map{
					"id":   enrollment.Course.Tutor.ID,
					"name": enrollment.Course.Tutor.User.Name,
				},
			},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": response,
	})
}

// GetTutorEnrollments lists enrollments across the calling tutor's courses
func GetTutorEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var tutor models.Tutor
	if err := db.Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Tutor profile not found!", nil)
	}

	var enrollments []models.Enrollment
	if err := db.Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.tutor_id = ?", tutor.ID).
		Preload("Course").
		Preload("Student").
		Preload("Student.User").
		Order("enrollments.created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response = append(response, fiber.Map{
			"id":            enrollment.ID,
			"status":        enrollment.Status,
			"paymentStatus": enrollment.PaymentStatus,
			"amount":        enrollment.Amount,
			"enrolledAt":    enrollment.CreatedAt,
			"course": fiber.Map{
				"id":    enrollment.Course.ID,
				"title": enrollment.Course.Title,
			},
			"student": fiber.Map{
				"id":   enrollment.Student.ID,
				"name": enrollment.Student.User.Name,
			},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": response,
	})
}

// GetEnrollments lists all enrollments (admin)
func GetEnrollments(c *fiber.Ctx) error {
	var enrollments []models.Enrollment
	if err := database.Database.Db.Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

// GetEnrollmentByID fetches a single enrollment
func GetEnrollmentByID(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).Preload("Course").First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateEnrollment updates the lifecycle status of an enrollment (admin)
func UpdateEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	reqData, ok := c.Locals("validatedEnrollmentUpdate").(*enrollmentValidator.UpdateEnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Status = models.EnrollmentStatus(reqData.Status)
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully!", enrollment)
}

// DeleteEnrollment removes an enrollment. Deleting the row reverses
// both membership sides at once; the payment is never refunded.
func DeleteEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := db.Unscoped().Delete(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment deleted!", nil)
}
