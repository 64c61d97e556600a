package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the platform role attached to a user account
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	gorm.Model
	Name         string    `json:"name" gorm:"default:''"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Mobile       string    `json:"mobile" gorm:"default:''"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);default:'student'"`
	Password     string    `json:"-" gorm:"not null"`
	ProfileImage string    `json:"profileImage" gorm:"default:''"`
	LastLogin    time.Time `json:"lastLogin" gorm:"default:NULL"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`
}
