package models

import (
	"time"

	"gorm.io/gorm"
)

type Lesson struct {
	gorm.Model
	CourseID      uint      `json:"courseId" gorm:"index;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text"`
	ScheduledDate time.Time `json:"scheduledDate"`
	IsDeleted     bool      `json:"-" gorm:"default:false"`
	Course        Course    `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
