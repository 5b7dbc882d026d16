package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/virtualflux/mht-backend/internal/services"
	"github.com/virtualflux/mht-backend/internal/storage"
)

// ReminderJob emails (and optionally SMSes) a daily digest of antenatal
// visit reminders falling due in the next week.
type ReminderJob struct {
	store storage.Store
	mail  services.Mailer
	sms   *services.SMSService

	email string
	phone string

	cron *cron.Cron
}

// NewReminderJob creates the job. sms may be nil when Twilio is not
// configured; the SMS copy is skipped then.
func NewReminderJob(store storage.Store, mail services.Mailer, sms *services.SMSService, email, phone string) *ReminderJob {
	return &ReminderJob{
		store: store,
		mail:  mail,
		sms:   sms,
		email: email,
		phone: phone,
	}
}

// Start schedules the digest daily at 08:00 server time.
func (j *ReminderJob) Start() {
	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", j.SendDigest); err != nil {
		log.Printf("failed to schedule reminder job: %v", err)
		return
	}
	c.Start()
	j.cron = c
	log.Println("Reminder job scheduled (daily 08:00)")
}

// Stop halts the schedule.
func (j *ReminderJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// SendDigest sends the reminder digest once. Failures are logged, never
// retried.
func (j *ReminderJob) SendDigest() {
	if j.email == "" {
		return
	}

	now := time.Now()
	visits, err := j.store.GetVisitsWithReminderBetween(now, now.Add(7*24*time.Hour))
	if err != nil {
		log.Printf("reminder digest: fetch visits: %v", err)
		return
	}
	if len(visits) == 0 {
		return
	}

	subject, text, html := services.ReminderEmail(visits)
	if err := j.mail.Send(j.email, subject, text, html); err != nil {
		log.Printf("reminder digest: send email: %v", err)
	}

	if j.sms != nil && j.phone != "" {
		if err := j.sms.SendSMS(j.phone, services.ReminderSMS(visits)); err != nil {
			log.Printf("reminder digest: send sms: %v", err)
		}
	}
}
