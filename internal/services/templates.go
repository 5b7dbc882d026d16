package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/virtualflux/mht-backend/internal/models"
)

const emailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 30px; border-radius: 0 0 8px 8px; }
    .otp-code { font-size: 32px; font-weight: bold; color: #4F46E5; text-align: center; margin: 20px 0; }
    .footer { text-align: center; margin-top: 30px; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p>© %d Virtual Flux Africa. All rights reserved.</p></div>
  </div>
</body>
</html>`

// OTPEmail builds the subject, plain-text and HTML bodies for a verification
// code email. expiresInMinutes is display only.
func OTPEmail(code string, expiresInMinutes int) (subject, text, html string) {
	subject = "Verify Your Account"
	text = fmt.Sprintf("Your code is: %s", code)

	content := fmt.Sprintf(`<p>Your One-Time Password (OTP) for authentication is:</p>
      <div class="otp-code">%s</div>
      <p>This code will expire in %d minutes.</p>
      <p>If you didn't request this code, please ignore this email.</p>`,
		code, expiresInMinutes)
	html = fmt.Sprintf(emailTemplate, "Your Verification Code", content, time.Now().Year())

	return subject, text, html
}

// ReminderEmail builds the daily digest of upcoming antenatal visit
// reminders.
func ReminderEmail(visits []*models.Visit) (subject, text, html string) {
	subject = "Upcoming Antenatal Visit Reminders"

	var lines []string
	var items []string
	for _, v := range visits {
		if v.NextVisitReminder == nil {
			continue
		}
		when := v.NextVisitReminder.Format("Mon, 02 Jan 2006")
		lines = append(lines, fmt.Sprintf("- %s with %s", when, v.DoctorName))
		items = append(items, fmt.Sprintf("<li><strong>%s</strong> with %s</li>", when, v.DoctorName))
	}

	text = "You have antenatal visits coming up:\n" + strings.Join(lines, "\n")
	content := fmt.Sprintf(`<p>You have antenatal visits coming up:</p><ul>%s</ul>
      <p>Please make arrangements to attend.</p>`, strings.Join(items, ""))
	html = fmt.Sprintf(emailTemplate, "Visit Reminders", content, time.Now().Year())

	return subject, text, html
}

// ReminderSMS builds the short-message form of the reminder digest.
func ReminderSMS(visits []*models.Visit) string {
	if len(visits) == 1 && visits[0].NextVisitReminder != nil {
		return fmt.Sprintf("Reminder: antenatal visit with %s on %s.",
			visits[0].DoctorName, visits[0].NextVisitReminder.Format("02 Jan"))
	}
	return fmt.Sprintf("Reminder: you have %d antenatal visits coming up this week.", len(visits))
}
