package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
	"github.com/virtualflux/mht-backend/internal/utils"
)

// OTPValidityWindow is how long an issued code stays valid. The value shown
// in the email is display-only; this window is what validation enforces.
const OTPValidityWindow = 5 * time.Minute

// OTPService issues and validates one-time codes proving control of a
// user's email address.
type OTPService struct {
	store  storage.Store
	mailer Mailer
	now    func() time.Time
}

func NewOTPService(store storage.Store, mailer Mailer) *OTPService {
	return &OTPService{
		store:  store,
		mailer: mailer,
		now:    time.Now,
	}
}

// Issue deletes every prior code for the user, persists a fresh one and
// emails it. At most one active code exists per user afterwards. The code is
// persisted before the email goes out; if the store rejects it nothing is
// sent, and a failed send fails the whole call.
func (s *OTPService) Issue(user *models.User) (*models.Otp, error) {
	if err := s.store.DeleteOTPsByUser(user.ID); err != nil {
		return nil, fmt.Errorf("delete prior otps: %w", err)
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	otp, err := s.store.CreateOTP(&models.Otp{
		UserID: user.ID,
		Code:   code,
	})
	if err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	subject, text, html := OTPEmail(code, int(OTPValidityWindow.Minutes()))
	if err := s.mailer.Send(user.Email, subject, text, html); err != nil {
		return nil, fmt.Errorf("send otp email: %w", err)
	}

	return otp, nil
}

// Validate checks a candidate code for the user and consumes it on success.
// Check order is fixed: not-found, already-used, expired, then stamp. A
// failed attempt never writes UsedAt, and there is no un-consume path.
func (s *OTPService) Validate(userID, code string) error {
	otp, err := s.store.GetOTPByUserAndCode(userID, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("OTP not found or invalid")
		}
		return fmt.Errorf("lookup otp: %w", err)
	}

	if otp.UsedAt != nil {
		return apperr.Conflict("OTP already used")
	}

	if s.now().Sub(otp.CreatedAt) > OTPValidityWindow {
		return apperr.BadRequest("OTP expired")
	}

	now := s.now()
	otp.UsedAt = &now
	if err := s.store.UpdateOTP(otp); err != nil {
		return fmt.Errorf("mark otp used: %w", err)
	}

	return nil
}
