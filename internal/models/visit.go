package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit is an antenatal checkup record. It carries no user reference: the
// deployment is single-tenant.
type Visit struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	VisitDate         time.Time  `json:"visitDate" gorm:"not null;index"`
	DoctorName        string     `json:"doctorName" gorm:"not null"`
	Notes             string     `json:"notes"`
	PregnancyWeek     *int       `json:"pregnancyWeek"`
	Weight            *float64   `json:"weight"`
	BloodPressure     string     `json:"bloodPressure" gorm:"size:20"`
	NextVisitReminder *time.Time `json:"nextVisitReminder" gorm:"index"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VisitInput is the create payload for a visit.
type VisitInput struct {
	VisitDate         time.Time  `json:"visitDate"`
	DoctorName        string     `json:"doctorName"`
	Notes             string     `json:"notes"`
	PregnancyWeek     *int       `json:"pregnancyWeek"`
	Weight            *float64   `json:"weight"`
	BloodPressure     string     `json:"bloodPressure"`
	NextVisitReminder *time.Time `json:"nextVisitReminder"`
}

// VisitUpdate is the partial-update payload; nil fields are left unchanged.
type VisitUpdate struct {
	VisitDate         *time.Time `json:"visitDate"`
	DoctorName        *string    `json:"doctorName"`
	Notes             *string    `json:"notes"`
	PregnancyWeek     *int       `json:"pregnancyWeek"`
	Weight            *float64   `json:"weight"`
	BloodPressure     *string    `json:"bloodPressure"`
	NextVisitReminder *time.Time `json:"nextVisitReminder"`
}

// VisitStats summarizes the visit history.
type VisitStats struct {
	TotalVisits       int64 `json:"totalVisits"`
	ThisMonthVisits   int64 `json:"thisMonthVisits"`
	UpcomingReminders int   `json:"upcomingReminders"`
}
