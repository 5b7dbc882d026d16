package services

import (
	"fmt"
	"log"

	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
)

// ContactService serves the emergency-contact directory.
type ContactService struct {
	store storage.Store
}

func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

func (s *ContactService) FindAll() ([]*models.EmergencyContact, error) {
	return s.store.GetAllContacts()
}

func (s *ContactService) FindByState(state string) ([]*models.EmergencyContact, error) {
	return s.store.GetContactsByState(state)
}

func (s *ContactService) FindByType(contactType string) ([]*models.EmergencyContact, error) {
	return s.store.GetContactsByType(contactType)
}

func (s *ContactService) Find24HourContacts() ([]*models.EmergencyContact, error) {
	return s.store.Get24HourContacts()
}

// Seed loads the directory once. A non-empty table is left untouched.
func (s *ContactService) Seed() error {
	count, err := s.store.CountContacts()
	if err != nil {
		return fmt.Errorf("count contacts: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, contact := range seedContacts() {
		if _, err := s.store.CreateContact(contact); err != nil {
			return fmt.Errorf("seed contact %q: %w", contact.Name, err)
		}
	}

	log.Println("Emergency contacts seeded successfully")
	return nil
}

func seedContacts() []*models.EmergencyContact {
	return []*models.EmergencyContact{
		{
			Name:           "National Emergency Medical Service",
			Type:           "Emergency Hotline",
			PhoneNumber:    "199",
			State:          "National",
			Is24Hours:      true,
			Specialization: "Emergency medical response and ambulance services",
		},
		{
			Name:             "Nigeria Centre for Disease Control (NCDC)",
			Type:             "Health Hotline",
			PhoneNumber:      "0800-9700-0010",
			AlternativePhone: "07032864444",
			State:            "National",
			Is24Hours:        true,
			Specialization:   "Disease outbreak reporting and health emergencies",
		},
		{
			Name:             "Lagos State University Teaching Hospital (LASUTH)",
			Type:             "Teaching Hospital",
			PhoneNumber:      "01-7743649",
			AlternativePhone: "08033000333",
			Address:          "1-5 Oba Akinjobi Street, Ikeja, Lagos",
			State:            "Lagos",
			LGA:              "Ikeja",
			Is24Hours:        true,
			Specialization:   "Obstetrics, Gynecology, Emergency care",
		},
		{
			Name:             "Lagos Emergency Medical Services (LASAMBUS)",
			Type:             "Emergency Service",
			PhoneNumber:      "199",
			AlternativePhone: "0800LASAMBUS",
			State:            "Lagos",
			Is24Hours:        true,
			Specialization:   "Emergency response and ambulance services",
		},
		{
			Name:           "Maternal and Child Health Centre, Isolo",
			Type:           "Health Center",
			PhoneNumber:    "08033445566",
			Address:        "Mushin Road, Isolo, Lagos",
			State:          "Lagos",
			LGA:            "Isolo",
			Is24Hours:      false,
			Specialization: "Antenatal care, delivery, postnatal care",
		},
		{
			Name:             "Aminu Kano Teaching Hospital",
			Type:             "Teaching Hospital",
			PhoneNumber:      "064-634237",
			AlternativePhone: "08065432100",
			Address:          "Zaria Road, Kano",
			State:            "Kano",
			LGA:              "Kano Municipal",
			Is24Hours:        true,
			Specialization:   "Obstetrics, Pediatrics, Emergency medicine",
		},
		{
			Name:           "Kano State Emergency Management Agency",
			Type:           "Emergency Service",
			PhoneNumber:    "08033556677",
			State:          "Kano",
			Is24Hours:      true,
			Specialization: "Emergency response and coordination",
		},
		{
			Name:             "Barau Dikko Teaching Hospital",
			Type:             "Teaching Hospital",
			PhoneNumber:      "062-290290",
			AlternativePhone: "08077889900",
			Address:          "Zaria-Kaduna Road, Kaduna",
			State:            "Kaduna",
			LGA:              "Kaduna North",
			Is24Hours:        true,
			Specialization:   "Maternal health, Neonatal care, Surgery",
		},
		{
			Name:             "University of Port Harcourt Teaching Hospital",
			Type:             "Teaching Hospital",
			PhoneNumber:      "084-300700",
			AlternativePhone: "08088776655",
			Address:          "East-West Road, Port Harcourt",
			State:            "Rivers",
			LGA:              "Port Harcourt",
			Is24Hours:        true,
			Specialization:   "High-risk pregnancies, Neonatal intensive care",
		},
		{
			Name:             "Nnamdi Azikiwe University Teaching Hospital",
			Type:             "Teaching Hospital",
			PhoneNumber:      "046-460690",
			AlternativePhone: "08099112233",
			Address:          "Nnewi, Anambra State",
			State:            "Anambra",
			LGA:              "Nnewi North",
			Is24Hours:        true,
			Specialization:   "Obstetrics and Gynecology, Emergency care",
		},
		{
			Name:           "Primary Health Care Centre Network",
			Type:           "Health Center",
			PhoneNumber:    "08011223344",
			State:          "Multi-State",
			Is24Hours:      false,
			Specialization: "Basic antenatal care, immunization, health education",
		},
	}
}
