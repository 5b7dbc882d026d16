package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmergencyContact is a static directory entry for a hospital, clinic or
// hotline. Read-mostly reference data, seeded once at startup.
type EmergencyContact struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Type             string    `json:"type" gorm:"not null;size:100;index"`
	PhoneNumber      string    `json:"phoneNumber" gorm:"not null;size:20"`
	AlternativePhone string    `json:"alternativePhone,omitempty" gorm:"size:20"`
	Address          string    `json:"address,omitempty"`
	State            string    `json:"state" gorm:"not null;size:100;index"`
	LGA              string    `json:"lga,omitempty" gorm:"column:lga;size:100"`
	Is24Hours        bool      `json:"is24Hours" gorm:"column:is_24_hours;default:false"`
	Specialization   string    `json:"specialization,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (c *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
