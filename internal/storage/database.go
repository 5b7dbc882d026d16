package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/virtualflux/mht-backend/internal/models"
)

// DatabaseStore is the PostgreSQL-backed store.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "phone_number = ?", phone).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *DatabaseStore) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// OTP operations

func (s *DatabaseStore) CreateOTP(otp *models.Otp) (*models.Otp, error) {
	if err := s.db.Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

func (s *DatabaseStore) GetOTPByUserAndCode(userID, code string) (*models.Otp, error) {
	var otp models.Otp
	if err := s.db.First(&otp, "user_id = ? AND code = ?", userID, code).Error; err != nil {
		return nil, translateErr(err)
	}
	return &otp, nil
}

func (s *DatabaseStore) GetOTPsByUser(userID string) ([]*models.Otp, error) {
	var otps []*models.Otp
	if err := s.db.Where("user_id = ?", userID).Find(&otps).Error; err != nil {
		return nil, err
	}
	return otps, nil
}

func (s *DatabaseStore) UpdateOTP(otp *models.Otp) error {
	return s.db.Save(otp).Error
}

func (s *DatabaseStore) DeleteOTPsByUser(userID string) error {
	return s.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Otp{}).Error
}

// Visit operations

func (s *DatabaseStore) CreateVisit(visit *models.Visit) (*models.Visit, error) {
	if err := s.db.Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *DatabaseStore) GetVisit(id string) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.First(&visit, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &visit, nil
}

func (s *DatabaseStore) GetAllVisits() ([]*models.Visit, error) {
	var visits []*models.Visit
	if err := s.db.Order("visit_date DESC").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *DatabaseStore) GetVisitsInRange(start, end time.Time) ([]*models.Visit, error) {
	var visits []*models.Visit
	err := s.db.
		Where("visit_date >= ? AND visit_date <= ?", start, end).
		Order("visit_date ASC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *DatabaseStore) GetVisitsWithReminderBetween(start, end time.Time) ([]*models.Visit, error) {
	var visits []*models.Visit
	err := s.db.
		Where("next_visit_reminder >= ? AND next_visit_reminder <= ?", start, end).
		Order("next_visit_reminder ASC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *DatabaseStore) UpdateVisit(visit *models.Visit) error {
	return s.db.Save(visit).Error
}

func (s *DatabaseStore) DeleteVisit(id string) error {
	res := s.db.Delete(&models.Visit{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) CountVisits() (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).Count(&count).Error
	return count, err
}

func (s *DatabaseStore) CountVisitsInRange(start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).
		Where("visit_date >= ? AND visit_date <= ?", start, end).
		Count(&count).Error
	return count, err
}

// Emergency contact operations

func (s *DatabaseStore) CreateContact(contact *models.EmergencyContact) (*models.EmergencyContact, error) {
	if err := s.db.Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *DatabaseStore) GetAllContacts() ([]*models.EmergencyContact, error) {
	var contacts []*models.EmergencyContact
	if err := s.db.Order("state ASC, name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) GetContactsByState(state string) ([]*models.EmergencyContact, error) {
	var contacts []*models.EmergencyContact
	err := s.db.Where("state = ?", state).Order("name ASC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) GetContactsByType(contactType string) ([]*models.EmergencyContact, error) {
	var contacts []*models.EmergencyContact
	err := s.db.Where("type = ?", contactType).Order("state ASC, name ASC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) Get24HourContacts() ([]*models.EmergencyContact, error) {
	var contacts []*models.EmergencyContact
	err := s.db.Where("is_24_hours = ?", true).Order("state ASC, name ASC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) CountContacts() (int64, error) {
	var count int64
	err := s.db.Model(&models.EmergencyContact{}).Count(&count).Error
	return count, err
}
