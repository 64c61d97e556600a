package models

import (
	"gorm.io/gorm"
)

// EarningType tags the origin of a ledger entry
type EarningType string

const (
	EarningTypeCourseEnrollment EarningType = "course-enrollment"
	EarningTypeSession          EarningType = "session"
)

// Earning is an append-only ledger entry for a tutor payout.
// Amount is in cents, net of the platform commission. Rows are created
// by the settlement engine and never updated or deleted.
type Earning struct {
	gorm.Model
	TutorID   uint        `json:"tutorId" gorm:"index;not null"`
	StudentID uint        `json:"studentId" gorm:"index;not null"`
	Amount    int64       `json:"amount" gorm:"not null"`
	Type      EarningType `json:"type" gorm:"type:varchar(30);not null"`
	Tutor     Tutor       `json:"-" gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE"`
	Student   Student     `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}
