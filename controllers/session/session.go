package sessionController

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"tutorme/config"
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	"tutorme/notifier"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// newRoomSecret returns a random hex-encoded room password
func newRoomSecret() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// StartSession transitions a scheduled session to in-progress. Only
// the session's tutor may start it; the room id and secret are minted
// here and nowhere else.
func StartSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var session models.Session
	if err := db.Where("lesson_id = ?", lessonID).Preload("Tutor").First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if session.Status != models.SessionStatusScheduled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session has already started or ended!", nil)
	}

	if session.Tutor.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the session's tutor can start it!", nil)
	}

	roomSecret, err := newRoomSecret()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start session!", nil)
	}

	now := time.Now()
	session.RoomID = uuid.NewString()
	session.RoomSecret = roomSecret
	session.Status = models.SessionStatusInProgress
	session.StartTime = &now

	if err := db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start session!", nil)
	}

	notifier.Send(session.Tutor.UserID, "You have started the session.", models.NotificationTypeSession, &notifier.Extra{CourseID: &session.CourseID})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session started successfully!", fiber.Map{
		"roomId":     session.RoomID,
		"roomSecret": session.RoomSecret,
		"startTime":  session.StartTime,
	})
}

// EndSession transitions an in-progress session to completed and
// records its duration in fractional hours
func EndSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var session models.Session
	if err := db.Where("lesson_id = ?", lessonID).Preload("Tutor").First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if session.Status != models.SessionStatusInProgress {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session is not ongoing!", nil)
	}

	if session.Tutor.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the session's tutor can end it!", nil)
	}

	now := time.Now()
	session.Duration = now.Sub(*session.StartTime).Hours()
	session.Status = models.SessionStatusCompleted
	session.EndTime = &now

	if err := db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to end session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session ended successfully!", fiber.Map{
		"duration": session.Duration,
	})
}

// JoinSession adds the calling student to the attendee set. Requires
// an enrollment in the session's course; joining twice is a no-op.
func JoinSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	var session models.Session
	if err := db.Where("lesson_id = ?", lessonID).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	// Enrollment check
	var count int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", student.ID, session.CourseID).Count(&count)
	if count == 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	// The composite key on session_attendees deduplicates a re-join
	if err := db.Model(&session).Association("Attendees").Append(&student); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined session successfully!", nil)
}

// GetSessionRoom returns the room credentials for an enrolled caller
func GetSessionRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var session models.Session
	if err := db.Where("lesson_id = ?", lessonID).Preload("Tutor").First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if session.Tutor.UserID != userID {
		var student models.Student
		if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
		}
		var count int64
		db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", student.ID, session.CourseID).Count(&count)
		if count == 0 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session room fetched!", fiber.Map{
		"roomId":     session.RoomID,
		"roomSecret": session.RoomSecret,
		"startTime":  session.StartTime,
		"status":     session.Status,
	})
}

// GetJaaSToken issues a signed, time-boxed room access token for the
// external video-conferencing service. Tutors get a moderator token at
// any non-terminal state; students only while the session is live.
func GetJaaSToken(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.UserRole)
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var session models.Session
	if err := db.Where("lesson_id = ?", lessonID).Preload("Tutor").Preload("Tutor.User").First(&session).Error; err != nil || session.RoomID == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session or room not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	isTutor := role == models.RoleTutor
	avatar := user.ProfileImage

	if isTutor {
		if session.Tutor.UserID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the tutor of this session!", nil)
		}
		avatar = session.Tutor.ProfileImage
	} else {
		var student models.Student
		if err := db.Where("user_id = ?", user.ID).First(&student).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
		}

		var count int64
		db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", student.ID, session.CourseID).Count(&count)
		if count == 0 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}

		if session.Status != models.SessionStatusInProgress {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Session is not currently active!", nil)
		}
		avatar = student.ProfileImage
	}

	cfg := config.AppConfig
	if cfg.JaaSPrivateKey == "" {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Video service is not configured!", nil)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JaaSPrivateKey))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate room token!", nil)
	}

	claims := jwt.MapClaims{
		"aud":  "jitsi",
		"iss":  "chat",
		"sub":  cfg.JaaSAppID,
		"room": session.RoomID,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"context": map[string]interface{}{
			"user": map[string]interface{}{
				"avatar":    avatar,
				"name":      user.Name,
				"email":     user.Email,
				"id":        user.ID,
				"moderator": isTutor,
			},
			"features": map[string]interface{}{
				"livestreaming": false,
				"recording":     false,
			},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = cfg.JaaSKid

	signed, err := token.SignedString(key)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate room token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room token generated!", fiber.Map{
		"token": signed,
	})
}

// sessionSummary is the trimmed list representation with populated titles
func sessionSummary(sessions []models.Session) []fiber.Map {
	result := make([]fiber.Map, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, fiber.Map{
			"id":            session.ID,
			"scheduledDate": session.ScheduledDate,
			"startTime":     session.StartTime,
			"status":        session.Status,
			"lesson": fiber.Map{
				"id":    session.Lesson.ID,
				"title": session.Lesson.Title,
			},
			"course": fiber.Map{
				"id":    session.Course.ID,
				"title": session.Course.Title,
			},
		})
	}
	return result
}

// GetTutorSessions lists the calling tutor's sessions
func GetTutorSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var tutor models.Tutor
	if err := db.Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Tutor profile not found!", nil)
	}

	var sessions []models.Session
	if err := db.Where("tutor_id = ?", tutor.ID).
		Preload("Lesson").
		Preload("Course").
		Order("scheduled_date desc").
		Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessionSummary(sessions),
	})
}

// GetStudentSessions lists sessions for every course the calling
// student is enrolled in
func GetStudentSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	var courseIDs []uint
	db.Model(&models.Enrollment{}).Where("student_id = ?", student.ID).Pluck("course_id", &courseIDs)

	var sessions []models.Session
	if len(courseIDs) > 0 {
		if err := db.Where("course_id IN ?", courseIDs).
			Preload("Lesson").
			Preload("Course").
			Order("scheduled_date desc").
			Find(&sessions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessionSummary(sessions),
	})
}
