package services

import (
	"errors"
	"testing"
	"time"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
)

type fakeMailer struct {
	sent    []string
	lastTo  string
	failing bool
}

func (f *fakeMailer) Send(to, subject, text, html string) error {
	if f.failing {
		return errors.New("smtp unreachable")
	}
	f.lastTo = to
	f.sent = append(f.sent, text)
	return nil
}

func newOTPFixture(t *testing.T) (*OTPService, *storage.MemoryStore, *fakeMailer, *models.User) {
	t.Helper()

	store := storage.NewMemoryStore()
	mailer := &fakeMailer{}
	svc := NewOTPService(store, mailer)

	user, err := store.CreateUser(&models.User{Email: "amina@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, store, mailer, user
}

func TestIssueReplacesPriorCodes(t *testing.T) {
	svc, store, mailer, user := newOTPFixture(t)

	first, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	otps, err := store.GetOTPsByUser(user.ID)
	if err != nil {
		t.Fatalf("list otps: %v", err)
	}
	if len(otps) != 1 {
		t.Fatalf("expected exactly 1 active otp, got %d", len(otps))
	}
	if otps[0].ID != second.ID {
		t.Errorf("surviving otp should be the second one")
	}
	if first.ID == second.ID {
		t.Errorf("second issue should create a new record")
	}
	if len(mailer.sent) != 2 {
		t.Errorf("expected 2 emails sent, got %d", len(mailer.sent))
	}
	if mailer.lastTo != user.Email {
		t.Errorf("email sent to %q, want %q", mailer.lastTo, user.Email)
	}
}

func TestIssueFailsWhenSendFails(t *testing.T) {
	svc, _, mailer, user := newOTPFixture(t)
	mailer.failing = true

	if _, err := svc.Issue(user); err == nil {
		t.Fatal("expected issue to fail when the email cannot be sent")
	}
}

func TestIssueGeneratesFourDigitCodes(t *testing.T) {
	svc, store, _, user := newOTPFixture(t)

	for i := 0; i < 20; i++ {
		if _, err := svc.Issue(user); err != nil {
			t.Fatalf("issue: %v", err)
		}
		otps, _ := store.GetOTPsByUser(user.ID)
		code := otps[0].Code
		if len(code) != 4 || code[0] == '0' {
			t.Fatalf("code %q is not in the 1000-9999 range", code)
		}
	}
}

func TestValidateUnknownCode(t *testing.T) {
	svc, _, _, user := newOTPFixture(t)

	err := svc.Validate(user.ID, "0000")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for a never-issued code, got %v", err)
	}
}

func TestValidateReplayFailsAlreadyUsed(t *testing.T) {
	svc, store, _, user := newOTPFixture(t)

	if _, err := svc.Issue(user); err != nil {
		t.Fatalf("issue: %v", err)
	}
	otps, _ := store.GetOTPsByUser(user.ID)
	code := otps[0].Code

	if err := svc.Validate(user.ID, code); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if otps[0].UsedAt == nil {
		t.Fatal("UsedAt should be stamped after a successful validation")
	}

	// Replay inside the window still fails.
	err := svc.Validate(user.ID, code)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict on replay, got %v", err)
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	svc, store, _, user := newOTPFixture(t)

	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		wantOK  bool
	}{
		{"just inside window", 4*time.Minute + 59*time.Second, true},
		{"just past window", 5*time.Minute + 1*time.Second, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.DeleteOTPsByUser(user.ID); err != nil {
				t.Fatalf("reset otps: %v", err)
			}
			otp := &models.Otp{UserID: user.ID, Code: "4821"}
			otp.CreatedAt = issuedAt
			if _, err := store.CreateOTP(otp); err != nil {
				t.Fatalf("create otp: %v", err)
			}

			svc.now = func() time.Time { return issuedAt.Add(tc.elapsed) }

			err := svc.Validate(user.ID, "4821")
			if tc.wantOK && err != nil {
				t.Fatalf("expected success at %v, got %v", tc.elapsed, err)
			}
			if !tc.wantOK && !apperr.IsKind(err, apperr.KindBadRequest) {
				t.Fatalf("expected BadRequest expired at %v, got %v", tc.elapsed, err)
			}
		})
	}
}

func TestIssueValidateReplayScenario(t *testing.T) {
	svc, store, _, user := newOTPFixture(t)

	issuedAt := time.Now()
	otp := &models.Otp{UserID: user.ID, Code: "4821"}
	otp.CreatedAt = issuedAt
	if _, err := store.CreateOTP(otp); err != nil {
		t.Fatalf("create otp: %v", err)
	}

	otps, _ := store.GetOTPsByUser(user.ID)
	if len(otps) != 1 || otps[0].UsedAt != nil {
		t.Fatalf("expected a single unused record")
	}

	svc.now = func() time.Time { return issuedAt.Add(10 * time.Second) }

	if err := svc.Validate(user.ID, "4821"); err != nil {
		t.Fatalf("validate at 10s: %v", err)
	}
	if otps[0].UsedAt == nil {
		t.Fatal("UsedAt should now be set")
	}

	err := svc.Validate(user.ID, "4821")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict on second validate, got %v", err)
	}
}
