package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseDifficulty defines the difficulty label of a course
type CourseDifficulty string

const (
	DifficultyBeginner     CourseDifficulty = "Beginner"
	DifficultyIntermediate CourseDifficulty = "Intermediate"
	DifficultyAdvanced     CourseDifficulty = "Advanced"
)

// Course is an item of the catalog. Price is in cents; IsFree courses
// skip the wallet settlement entirely. The set of enrolled students is
// not duplicated here: the enrollments table is the membership edge.
type Course struct {
	gorm.Model
	CourseImage  string           `json:"courseImage" gorm:"default:''"`
	Title        string           `json:"title" gorm:"not null"`
	Description  string           `json:"description" gorm:"type:text"`
	TutorID      uint             `json:"tutorId" gorm:"index;not null"`
	Rating       float64          `json:"rating" gorm:"default:0"`
	Duration     int              `json:"duration" gorm:"not null"` // in hours
	Price        int64            `json:"price" gorm:"not null;default:0"`
	IsFree       bool             `json:"isFree" gorm:"default:false"`
	Difficulty   CourseDifficulty `json:"difficulty" gorm:"type:varchar(20)"`
	Requirements datatypes.JSON   `json:"requirements"`
	Outcomes     datatypes.JSON   `json:"outcomes"`
	StartDate    time.Time        `json:"startDate"`
	StartTime    string           `json:"startTime" gorm:"default:''"`
	IsDeleted    bool             `json:"-" gorm:"default:false"`
	Tutor        Tutor            `json:"tutor" gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE"`
}
