package storage

import (
	"errors"
	"time"

	"github.com/virtualflux/mht-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UpdateUser(user *models.User) error
	CountUsers() (int64, error)

	// OTP operations
	CreateOTP(otp *models.Otp) (*models.Otp, error)
	GetOTPByUserAndCode(userID, code string) (*models.Otp, error)
	GetOTPsByUser(userID string) ([]*models.Otp, error)
	UpdateOTP(otp *models.Otp) error
	DeleteOTPsByUser(userID string) error

	// Visit operations
	CreateVisit(visit *models.Visit) (*models.Visit, error)
	GetVisit(id string) (*models.Visit, error)
	GetAllVisits() ([]*models.Visit, error)
	GetVisitsInRange(start, end time.Time) ([]*models.Visit, error)
	GetVisitsWithReminderBetween(start, end time.Time) ([]*models.Visit, error)
	UpdateVisit(visit *models.Visit) error
	DeleteVisit(id string) error
	CountVisits() (int64, error)
	CountVisitsInRange(start, end time.Time) (int64, error)

	// Emergency contact operations
	CreateContact(contact *models.EmergencyContact) (*models.EmergencyContact, error)
	GetAllContacts() ([]*models.EmergencyContact, error)
	GetContactsByState(state string) ([]*models.EmergencyContact, error)
	GetContactsByType(contactType string) ([]*models.EmergencyContact, error)
	Get24HourContacts() ([]*models.EmergencyContact, error)
	CountContacts() (int64, error)
}
