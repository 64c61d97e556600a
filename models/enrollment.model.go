package models

import (
	"gorm.io/gorm"
)

// EnrollmentStatus defines the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// PaymentStatus defines how an enrollment was settled
type PaymentStatus string

const (
	PaymentStatusFree    PaymentStatus = "free"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Enrollment links a student to a course. The composite unique index is
// what makes double-enrollment impossible under concurrent requests;
// the application-level check only exists for a friendly 409 message.
// Amount is the price paid in cents (0 for free courses).
type Enrollment struct {
	gorm.Model
	StudentID     uint             `json:"studentId" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID      uint             `json:"courseId" gorm:"uniqueIndex:idx_student_course;not null"`
	Status        EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'enrolled'"`
	PaymentStatus PaymentStatus    `json:"paymentStatus" gorm:"type:varchar(20);default:'pending'"`
	Amount        int64            `json:"amount" gorm:"not null;default:0"`
	Student       Student          `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course        Course           `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
