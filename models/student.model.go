package models

import (
	"gorm.io/gorm"
)

// Student is the student profile attached 1:1 to a user account.
// WalletBalance is stored in cents and is only ever mutated through
// atomic increments/decrements at the database layer.
type Student struct {
	gorm.Model
	UserID        uint   `json:"userId" gorm:"uniqueIndex;not null"`
	WalletBalance int64  `json:"walletBalance" gorm:"not null;default:0;check:wallet_balance >= 0"`
	ProfileImage  string `json:"profileImage" gorm:"default:''"`
	User          User   `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
