package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record. Created at sign-up with only the email
// populated; onboarding fills the profile fields, email verification stamps
// EmailVerifiedAt. Users are never deleted in the normal flow.
type User struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber     *string    `json:"phoneNumber" gorm:"uniqueIndex"`
	Address         string     `json:"address"`
	OnboardedAt     *time.Time `json:"onboardedAt"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SignUpRequest is the sign-up payload.
type SignUpRequest struct {
	Email string `json:"email"`
}

// VerifyEmailRequest is the email-verification payload.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// CheckPhoneRequest asks whether a phone number is still available.
type CheckPhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// OnboardingRequest carries the profile fields merged into the user when
// onboarding completes.
type OnboardingRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}
