package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionStatus defines the live-meeting state of a lesson
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in-progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCanceled   SessionStatus = "canceled"
)

// Session is the live meeting of a lesson. RoomID and RoomSecret are
// empty until the tutor starts the session. Attendees grow append-only
// while in-progress; the composite key on the join table deduplicates.
// RoomSecret is handed to enrolled participants only, never logged.
type Session struct {
	gorm.Model
	LessonID      uint          `json:"lessonId" gorm:"uniqueIndex;not null"`
	CourseID      uint          `json:"courseId" gorm:"index;not null"`
	TutorID       uint          `json:"tutorId" gorm:"index;not null"`
	RoomID        string        `json:"roomId" gorm:"default:''"`
	RoomSecret    string        `json:"-" gorm:"default:''"`
	Status        SessionStatus `json:"status" gorm:"type:varchar(20);default:'scheduled'"`
	ScheduledDate time.Time     `json:"scheduledDate" gorm:"not null"`
	StartTime     *time.Time    `json:"startTime"`
	EndTime       *time.Time    `json:"endTime"`
	Duration      float64       `json:"duration" gorm:"default:0"` // in hours
	ReminderSent  bool          `json:"-" gorm:"default:false"`
	Attendees     []Student     `json:"attendees" gorm:"many2many:session_attendees"`
	Lesson        Lesson        `json:"lesson" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	Course        Course        `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Tutor         Tutor         `json:"tutor" gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE"`
}
