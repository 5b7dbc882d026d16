package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
)

// AuthService orchestrates the passwordless sign-up flow:
// sign-up, OTP issuance, email verification, onboarding.
type AuthService struct {
	store storage.Store
	otp   *OTPService
}

func NewAuthService(store storage.Store, otp *OTPService) *AuthService {
	return &AuthService{store: store, otp: otp}
}

// SignUp creates a minimal user record for the email and issues a
// verification code to it.
func (s *AuthService) SignUp(email string) (*models.User, error) {
	_, err := s.store.GetUserByEmail(email)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user, err := s.store.CreateUser(&models.User{Email: email})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if _, err := s.otp.Issue(user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail validates the code for the user behind the email and stamps
// EmailVerifiedAt. The code is consumed before the already-verified check, so
// a replayed verification burns the code either way.
func (s *AuthService) VerifyEmail(email, code string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.otp.Validate(user.ID, code); err != nil {
		return nil, err
	}

	if user.EmailVerifiedAt != nil {
		return nil, apperr.Conflict("Email already verified")
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	if err := s.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// Onboarding merges the profile fields into a verified user and stamps
// OnboardedAt. It succeeds at most once per user.
func (s *AuthService) Onboarding(userID string, req *models.OnboardingRequest) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.EmailVerifiedAt == nil {
		return nil, apperr.BadRequest("Email not verified")
	}

	if user.OnboardedAt != nil {
		return nil, apperr.Conflict("User already onboarded")
	}

	user.Name = req.Name
	user.Address = req.Address
	if req.PhoneNumber != "" {
		phone := req.PhoneNumber
		user.PhoneNumber = &phone
	}
	now := time.Now()
	user.OnboardedAt = &now

	if err := s.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// PhoneAvailable reports whether no user holds the given phone number.
func (s *AuthService) PhoneAvailable(phone string) (bool, error) {
	_, err := s.store.GetUserByPhone(phone)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup phone: %w", err)
	}
	return false, nil
}
