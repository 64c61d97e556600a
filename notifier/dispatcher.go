package notifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tutorme/models"

	"gorm.io/gorm"
)

// Socket event names
const (
	EventNewNotification       = "new-notification"
	EventNotificationRead      = "notification-read"
	EventCourseNotification    = "course-notification"
	EventCourseEnrollment      = "course-enrollment"
	EventConnectionEstablished = "connection_established"
)

// ErrMissingRecipient is returned when a notification has no target user
var ErrMissingRecipient = errors.New("notifier: missing recipient user id")

// Extra carries the optional references attached to a notification
type Extra struct {
	CourseID *uint
	TutorID  *uint
	Data     map[string]interface{}
}

// envelope is the wire format of every live push
type envelope struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// CourseNotificationResult summarizes a course-wide broadcast
type CourseNotificationResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	StudentsNotified int    `json:"studentsNotified"`
}

// Dispatcher persists notifications and attempts best-effort live
// delivery through the presence registry. Persistence is the
// durability guarantee; a failed or skipped push is never an error.
type Dispatcher struct {
	db       *gorm.DB
	registry *Registry
}

func New(db *gorm.DB, registry *Registry) *Dispatcher {
	return &Dispatcher{db: db, registry: registry}
}

// Registry exposes the presence registry backing this dispatcher
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Send persists a notification for userID and pushes it live if the
// recipient is currently connected.
func (d *Dispatcher) Send(userID uint, message string, ntype models.NotificationType, extra *Extra) (*models.Notification, error) {
	if userID == 0 {
		log.Println("notifier: invalid user id provided for notification")
		return nil, ErrMissingRecipient
	}

	notification := models.Notification{
		UserID:  userID,
		Message: message,
		Type:    ntype,
	}
	if extra != nil {
		notification.CourseID = extra.CourseID
		notification.TutorID = extra.TutorID
		if extra.Data != nil {
			if raw, err := json.Marshal(extra.Data); err == nil {
				notification.Data = raw
			}
		}
	}

	if err := d.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	d.Push(userID, EventNewNotification, notification)
	return &notification, nil
}

// Push attempts a live delivery without persisting anything.
// Fire-and-forget: an offline recipient or a dead connection only
// costs the push, the persisted record (if any) still stands.
func (d *Dispatcher) Push(userID uint, event string, data interface{}) {
	conn, ok := d.registry.Get(userID)
	if !ok {
		log.Printf("notifier: user %d not connected, notification saved to DB only", userID)
		return
	}
	if err := conn.WriteJSON(envelope{Type: event, Timestamp: time.Now(), Data: data}); err != nil {
		log.Printf("notifier: live push to user %d failed: %v", userID, err)
	}
}

// SendCourseNotification notifies every student enrolled in a course
// and broadcasts the same message as a live course event.
func (d *Dispatcher) SendCourseNotification(courseID, tutorID uint, message string) (*CourseNotificationResult, error) {
	var enrollments []models.Enrollment
	if err := d.db.Where("course_id = ?", courseID).Preload("Student").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	if len(enrollments) == 0 {
		return &CourseNotificationResult{
			Success:          false,
			Message:          "No students enrolled in this course",
			StudentsNotified: 0,
		}, nil
	}

	for _, enrollment := range enrollments {
		if _, err := d.Send(enrollment.Student.UserID, message, models.NotificationTypeCourse, &Extra{
			CourseID: &courseID,
			TutorID:  &tutorID,
		}); err != nil {
			return nil, err
		}

		d.Push(enrollment.Student.UserID, EventCourseNotification, map[string]interface{}{
			"courseId":  courseID,
			"tutorId":   tutorID,
			"message":   message,
			"timestamp": time.Now(),
		})
	}

	return &CourseNotificationResult{
		Success:          true,
		Message:          fmt.Sprintf("Notification sent to %d students", len(enrollments)),
		StudentsNotified: len(enrollments),
	}, nil
}

// MarkAllRead flags every notification of a user as read. Idempotent.
func (d *Dispatcher) MarkAllRead(userID uint) error {
	return d.db.Model(&models.Notification{}).Where("user_id = ?", userID).Update("is_read", true).Error
}

// std is the process-wide dispatcher wired up in main
var std *Dispatcher

// Init configures the package-level dispatcher
func Init(db *gorm.DB) {
	std = New(db, NewRegistry())
}

// Default returns the package-level dispatcher
func Default() *Dispatcher {
	return std
}

// Send delivers through the package-level dispatcher. The error is
// logged, not returned: notification failures must never fail the
// triggering business operation.
func Send(userID uint, message string, ntype models.NotificationType, extra *Extra) {
	if std == nil {
		log.Println("notifier: dispatcher not initialized")
		return
	}
	if _, err := std.Send(userID, message, ntype, extra); err != nil {
		log.Printf("notifier: failed to send notification to user %d: %v", userID, err)
	}
}

// Push delivers a live-only event through the package-level dispatcher
func Push(userID uint, event string, data interface{}) {
	if std == nil {
		log.Println("notifier: dispatcher not initialized")
		return
	}
	std.Push(userID, event, data)
}
