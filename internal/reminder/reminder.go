package reminder

import (
	"context"
	"log"
	"time"

	"github.com/uveral/agendapsico/internal/email"
	"github.com/uveral/agendapsico/internal/repo"
	"gorm.io/gorm"
)

// Sender sends one reminder to a client's email address.
type Sender interface {
	SendAppointmentReminder(to, fullName, dateStr, timeStr string) error
}

// Lister returns appointments for reminder on a given date. Used in tests
// with a mock; in production pass nil to use repo.
type Lister interface {
	ListAppointmentsForReminder(ctx context.Context, db *gorm.DB, date time.Time) ([]repo.AppointmentReminderRow, error)
}

// SendAppointmentReminders loads the non-cancelled appointments of the
// given date (tomorrow in practice) and sends one email per client with an
// address on file. Failures per recipient are logged and do not stop the
// rest.
func SendAppointmentReminders(ctx context.Context, db *gorm.DB, date time.Time, sender Sender) (sent int, skipped int) {
	return SendAppointmentRemindersWithLister(ctx, db, date, sender, nil)
}

// SendAppointmentRemindersWithLister is like SendAppointmentReminders but
// accepts an optional lister for tests. If lister is nil, repo is used (and
// db must be non-nil).
func SendAppointmentRemindersWithLister(ctx context.Context, db *gorm.DB, date time.Time, sender Sender, lister Lister) (sent int, skipped int) {
	if db == nil && lister == nil {
		log.Printf("[reminder] db is nil and no lister, skipping")
		return 0, 0
	}
	var rows []repo.AppointmentReminderRow
	var err error
	if lister != nil {
		rows, err = lister.ListAppointmentsForReminder(ctx, db, date)
	} else {
		rows, err = repo.ListAppointmentsForReminder(ctx, db, date)
	}
	if err != nil {
		log.Printf("[reminder] ListAppointmentsForReminder: %v", err)
		return 0, 0
	}
	if sender == nil {
		log.Printf("[reminder] email not configured, would send %d reminders", len(rows))
		return 0, len(rows)
	}
	dateStr := date.Format("02/01/2006")
	for _, r := range rows {
		timeStr := repo.TimeStringToHHMM(r.StartTime)
		if err := sender.SendAppointmentReminder(r.ClientEmail, r.ClientName, dateStr, timeStr); err != nil {
			log.Printf("[reminder] send failed appointment=%s client=%s email=%s: %v", r.AppointmentID, r.ClientID, r.ClientEmail, err)
			skipped++
			continue
		}
		sent++
		log.Printf("[reminder] sent appointment=%s to %s", r.AppointmentID, r.ClientEmail)
	}
	return sent, skipped
}

// DefaultEmailSender returns an email-backed Sender, or nil when SMTP is
// not configured.
func DefaultEmailSender(cfg *email.Config) Sender {
	if cfg == nil || cfg.Host == "" || cfg.FromAddr == "" {
		return nil
	}
	return &emailSender{cfg: cfg}
}

type emailSender struct {
	cfg *email.Config
}

func (s *emailSender) SendAppointmentReminder(to, fullName, dateStr, timeStr string) error {
	return s.cfg.SendAppointmentReminder(to, fullName, dateStr, timeStr)
}
