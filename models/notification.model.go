package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType defines the category of a notification
type NotificationType string

const (
	NotificationTypeBooking       NotificationType = "booking"
	NotificationTypeSession       NotificationType = "session"
	NotificationTypePayment       NotificationType = "payment"
	NotificationTypeCommunication NotificationType = "communication"
	NotificationTypeSystem        NotificationType = "system"
	NotificationTypeCourse        NotificationType = "course"
)

// Notification is the persisted half of the dual-delivery protocol.
// A row is always written before any live push is attempted, so a
// recipient that is offline still finds the notification on next poll.
type Notification struct {
	gorm.Model
	UserID   uint             `json:"userId" gorm:"index;not null"`
	Message  string           `json:"message" gorm:"type:text;not null"`
	Type     NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	CourseID *uint            `json:"courseId,omitempty"` // optional, for course-related notifications
	TutorID  *uint            `json:"tutorId,omitempty"`  // optional, for tutor-related notifications
	Data     datatypes.JSON   `json:"data,omitempty"`
	IsRead   bool             `json:"isRead" gorm:"default:false"`
}
