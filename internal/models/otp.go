package models

import (
	"time"

	"gorm.io/gorm"
)

// Otp is a single-use verification code owned by a user. CreatedAt (from
// gorm.Model) is the issue timestamp; expiry is computed against it at
// validation time, never stored. UsedAt is stamped exactly once on a
// successful validation.
type Otp struct {
	gorm.Model
	UserID string `gorm:"not null;index"`
	Code   string `gorm:"not null"`
	UsedAt *time.Time
}
