package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/services"
	"github.com/virtualflux/mht-backend/internal/storage"
)

type noopMailer struct{}

func (noopMailer) Send(to, subject, text, html string) error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	store := storage.NewMemoryStore()
	auth := services.NewAuthService(store, services.NewOTPService(store, noopMailer{}))
	h := NewAuthHandler(auth)

	app := fiber.New()
	app.Post("/api/auth/signup", h.SignUp)
	app.Post("/api/auth/logout", h.Logout)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("response is not the uniform envelope: %v (%s)", err, raw)
	}
	return resp.StatusCode, env
}

func TestSignUpEndpoint(t *testing.T) {
	app := newAuthApp(t)

	status, env := postJSON(t, app, "/api/auth/signup", `{"email":"amina@example.com"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if !env.Success || env.Data == nil {
		t.Fatalf("expected success envelope with data, got %+v", env)
	}

	var user struct {
		Email           string  `json:"email"`
		OnboardedAt     *string `json:"onboardedAt"`
		EmailVerifiedAt *string `json:"emailVerifiedAt"`
	}
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Email != "amina@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if user.OnboardedAt != nil || user.EmailVerifiedAt != nil {
		t.Error("fresh user must have null stamps")
	}
}

func TestSignUpDuplicateMapsToConflict(t *testing.T) {
	app := newAuthApp(t)

	postJSON(t, app, "/api/auth/signup", `{"email":"amina@example.com"}`)
	status, env := postJSON(t, app, "/api/auth/signup", `{"email":"amina@example.com"}`)

	if status != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if env.Success {
		t.Error("failure envelope must have success=false")
	}
	if string(env.Data) != "null" {
		t.Errorf("failure envelope data must be null, got %s", env.Data)
	}
}

func TestSignUpRejectsBadBody(t *testing.T) {
	app := newAuthApp(t)

	status, env := postJSON(t, app, "/api/auth/signup", `{"email":""}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Success {
		t.Error("failure envelope must have success=false")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	cookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(cookie, "access_token=") {
		t.Errorf("expected access_token cookie to be cleared, got %q", cookie)
	}
}
