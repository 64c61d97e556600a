package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tutor is the tutor profile attached 1:1 to a user account.
// WalletBalance is stored in cents, credited by the settlement engine.
type Tutor struct {
	gorm.Model
	UserID        uint           `json:"userId" gorm:"uniqueIndex;not null"`
	Bio           string         `json:"bio" gorm:"type:text"`
	Experience    datatypes.JSON `json:"experience"`        // array of experience points
	Interests     datatypes.JSON `json:"teachingInterests"` // array of teaching interests
	Rating        float64        `json:"rating" gorm:"default:0"`
	WalletBalance int64          `json:"walletBalance" gorm:"not null;default:0"`
	ProfileImage  string         `json:"profileImage" gorm:"default:''"`
	User          User           `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
