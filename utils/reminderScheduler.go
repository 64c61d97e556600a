package utils

import (
	"fmt"
	"log"
	"time"

	"tutorme/database"
	"tutorme/models"
	"tutorme/notifier"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SESSION-REMINDER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReminderScheduler runs the upcoming-session reminder job every
// 10 minutes
func StartReminderScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("*/10 * * * *", sendUpcomingSessionReminders); err != nil {
		log.Fatalf("Failed to schedule session reminders: %v", err)
	}
	c.Start()
	logScheduler("Session reminder scheduler started")
	return c
}

// sendUpcomingSessionReminders notifies the tutor and every enrolled
// student of sessions starting within the next hour. ReminderSent
// keeps the job one-shot per session.
func sendUpcomingSessionReminders() {
	db := database.Database.Db
	now := time.Now()

	var sessions []models.Session
	if err := db.Where("status = ? AND reminder_sent = ? AND scheduled_date BETWEEN ? AND ?",
		models.SessionStatusScheduled, false, now, now.Add(time.Hour)).
		Preload("Tutor").
		Preload("Lesson").
		Find(&sessions).Error; err != nil {
		logScheduler("Error fetching upcoming sessions: " + err.Error())
		return
	}

	for _, session := range sessions {
		message := fmt.Sprintf("Your session %q starts at %s.",
			session.Lesson.Title, session.ScheduledDate.Format("15:04"))

		notifier.Send(session.Tutor.UserID, message, models.NotificationTypeSession, &notifier.Extra{CourseID: &session.CourseID})

		var enrollments []models.Enrollment
		if err := db.Where("course_id = ?", session.CourseID).Preload("Student").Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments for course: " + err.Error())
			continue
		}
		for _, enrollment := range enrollments {
			notifier.Send(enrollment.Student.UserID, message, models.NotificationTypeSession, &notifier.Extra{CourseID: &session.CourseID})
		}

		if err := db.Model(&session).Update("reminder_sent", true).Error; err != nil {
			logScheduler("Error flagging reminder as sent: " + err.Error())
		}
	}

	if len(sessions) > 0 {
		logScheduler(fmt.Sprintf("Sent reminders for %d upcoming sessions", len(sessions)))
	}
}
