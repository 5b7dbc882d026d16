package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/virtualflux/mht-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for tests and local development
// without a database.
type MemoryStore struct {
	users    map[string]*models.User
	otps     map[uint]*models.Otp
	visits   map[string]*models.Visit
	contacts map[string]*models.EmergencyContact

	userMu    sync.RWMutex
	otpMu     sync.RWMutex
	visitMu   sync.RWMutex
	contactMu sync.RWMutex

	otpCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		otps:     make(map[uint]*models.Otp),
		visits:   make(map[string]*models.Visit),
		contacts: make(map[string]*models.EmergencyContact),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByID(id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.PhoneNumber != nil && *user.PhoneNumber == phone {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	return int64(len(m.users)), nil
}

// OTP operations

func (m *MemoryStore) CreateOTP(otp *models.Otp) (*models.Otp, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	m.otpCounter++
	otp.ID = m.otpCounter
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	otp.UpdatedAt = otp.CreatedAt

	m.otps[otp.ID] = otp
	return otp, nil
}

func (m *MemoryStore) GetOTPByUserAndCode(userID, code string) (*models.Otp, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	for _, otp := range m.otps {
		if otp.UserID == userID && otp.Code == code {
			return otp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetOTPsByUser(userID string) ([]*models.Otp, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	var otps []*models.Otp
	for _, otp := range m.otps {
		if otp.UserID == userID {
			otps = append(otps, otp)
		}
	}
	return otps, nil
}

func (m *MemoryStore) UpdateOTP(otp *models.Otp) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[otp.ID]; !exists {
		return ErrNotFound
	}
	otp.UpdatedAt = time.Now()
	m.otps[otp.ID] = otp
	return nil
}

func (m *MemoryStore) DeleteOTPsByUser(userID string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	for id, otp := range m.otps {
		if otp.UserID == userID {
			delete(m.otps, id)
		}
	}
	return nil
}

// Visit operations

func (m *MemoryStore) CreateVisit(visit *models.Visit) (*models.Visit, error) {
	m.visitMu.Lock()
	defer m.visitMu.Unlock()

	if visit.ID == "" {
		visit.ID = uuid.NewString()
	}
	now := time.Now()
	visit.CreatedAt = now
	visit.UpdatedAt = now

	m.visits[visit.ID] = visit
	return visit, nil
}

func (m *MemoryStore) GetVisit(id string) (*models.Visit, error) {
	m.visitMu.RLock()
	defer m.visitMu.RUnlock()

	visit, exists := m.visits[id]
	if !exists {
		return nil, ErrNotFound
	}
	return visit, nil
}

func (m *MemoryStore) GetAllVisits() ([]*models.Visit, error) {
	m.visitMu.RLock()
	defer m.visitMu.RUnlock()

	visits := make([]*models.Visit, 0, len(m.visits))
	for _, visit := range m.visits {
		visits = append(visits, visit)
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].VisitDate.After(visits[j].VisitDate)
	})
	return visits, nil
}

func (m *MemoryStore) GetVisitsInRange(start, end time.Time) ([]*models.Visit, error) {
	m.visitMu.RLock()
	defer m.visitMu.RUnlock()

	var visits []*models.Visit
	for _, visit := range m.visits {
		if !visit.VisitDate.Before(start) && !visit.VisitDate.After(end) {
			visits = append(visits, visit)
		}
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].VisitDate.Before(visits[j].VisitDate)
	})
	return visits, nil
}

func (m *MemoryStore) GetVisitsWithReminderBetween(start, end time.Time) ([]*models.Visit, error) {
	m.visitMu.RLock()
	defer m.visitMu.RUnlock()

	var visits []*models.Visit
	for _, visit := range m.visits {
		r := visit.NextVisitReminder
		if r == nil {
			continue
		}
		if !r.Before(start) && !r.After(end) {
			visits = append(visits, visit)
		}
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].NextVisitReminder.Before(*visits[j].NextVisitReminder)
	})
	return visits, nil
}

func (m *MemoryStore) UpdateVisit(visit *models.Visit) error {
	m.visitMu.Lock()
	defer m.visitMu.Unlock()

	if _, exists := m.visits[visit.ID]; !exists {
		return ErrNotFound
	}
	visit.UpdatedAt = time.Now()
	m.visits[visit.ID] = visit
	return nil
}

func (m *MemoryStore) DeleteVisit(id string) error {
	m.visitMu.Lock()
	defer m.visitMu.Unlock()

	if _, exists := m.visits[id]; !exists {
		return ErrNotFound
	}
	delete(m.visits, id)
	return nil
}

func (m *MemoryStore) CountVisits() (int64, error) {
	m.visitMu.RLock()
	defer m.visitMu.RUnlock()

	return int64(len(m.visits)), nil
}

func (m *MemoryStore) CountVisitsInRange(start, end time.Time) (int64, error) {
	visits, err := m.GetVisitsInRange(start, end)
	if err != nil {
		return 0, err
	}
	return int64(len(visits)), nil
}

// Emergency contact operations

func (m *MemoryStore) CreateContact(contact *models.EmergencyContact) (*models.EmergencyContact, error) {
	m.contactMu.Lock()
	defer m.contactMu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	contact.CreatedAt = time.Now()

	m.contacts[contact.ID] = contact
	return contact, nil
}

func sortContacts(contacts []*models.EmergencyContact) {
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].State != contacts[j].State {
			return contacts[i].State < contacts[j].State
		}
		return contacts[i].Name < contacts[j].Name
	})
}

func (m *MemoryStore) GetAllContacts() ([]*models.EmergencyContact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	contacts := make([]*models.EmergencyContact, 0, len(m.contacts))
	for _, contact := range m.contacts {
		contacts = append(contacts, contact)
	}
	sortContacts(contacts)
	return contacts, nil
}

func (m *MemoryStore) GetContactsByState(state string) ([]*models.EmergencyContact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	var contacts []*models.EmergencyContact
	for _, contact := range m.contacts {
		if contact.State == state {
			contacts = append(contacts, contact)
		}
	}
	sortContacts(contacts)
	return contacts, nil
}

func (m *MemoryStore) GetContactsByType(contactType string) ([]*models.EmergencyContact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	var contacts []*models.EmergencyContact
	for _, contact := range m.contacts {
		if contact.Type == contactType {
			contacts = append(contacts, contact)
		}
	}
	sortContacts(contacts)
	return contacts, nil
}

func (m *MemoryStore) Get24HourContacts() ([]*models.EmergencyContact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	var contacts []*models.EmergencyContact
	for _, contact := range m.contacts {
		if contact.Is24Hours {
			contacts = append(contacts, contact)
		}
	}
	sortContacts(contacts)
	return contacts, nil
}

func (m *MemoryStore) CountContacts() (int64, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	return int64(len(m.contacts)), nil
}
