package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uveral/agendapsico/internal/email"
	"github.com/uveral/agendapsico/internal/repo"
	"gorm.io/gorm"
)

type mockLister struct {
	rows []repo.AppointmentReminderRow
	err  error
}

func (m *mockLister) ListAppointmentsForReminder(ctx context.Context, db *gorm.DB, date time.Time) ([]repo.AppointmentReminderRow, error) {
	return m.rows, m.err
}

type senderCall struct {
	to       string
	fullName string
	dateStr  string
	timeStr  string
}

type mockSender struct {
	calls     []senderCall
	failIndex int
}

func (m *mockSender) SendAppointmentReminder(to, fullName, dateStr, timeStr string) error {
	idx := len(m.calls)
	m.calls = append(m.calls, senderCall{to: to, fullName: fullName, dateStr: dateStr, timeStr: timeStr})
	if idx == m.failIndex {
		return errors.New("smtp error")
	}
	return nil
}

func TestSendAppointmentReminders_DBNil(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	sent, skipped := SendAppointmentReminders(ctx, nil, date, nil)
	if sent != 0 || skipped != 0 {
		t.Errorf("db nil: got sent=%d skipped=%d, want 0,0", sent, skipped)
	}
}

func TestSendAppointmentRemindersWithLister_ListerReturnsError(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	lister := &mockLister{err: errors.New("db error")}
	sender := &mockSender{failIndex: -1}
	sent, skipped := SendAppointmentRemindersWithLister(ctx, nil, date, sender, lister)
	if sent != 0 || skipped != 0 {
		t.Errorf("lister error: got sent=%d skipped=%d, want 0,0", sent, skipped)
	}
}

func TestSendAppointmentRemindersWithLister_SenderNil_CountsSkipped(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	rows := []repo.AppointmentReminderRow{
		{AppointmentID: uuid.New(), ClientName: "María", ClientEmail: "maria@example.com", StartTime: "10:00:00"},
		{AppointmentID: uuid.New(), ClientName: "Juan", ClientEmail: "juan@example.com", StartTime: "11:00:00"},
	}
	lister := &mockLister{rows: rows}
	sent, skipped := SendAppointmentRemindersWithLister(ctx, nil, date, nil, lister)
	if sent != 0 || skipped != 2 {
		t.Errorf("sender nil: got sent=%d skipped=%d, want 0,2", sent, skipped)
	}
}

func TestSendAppointmentRemindersWithLister_AllSent(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	rows := []repo.AppointmentReminderRow{
		{AppointmentID: uuid.New(), ClientID: uuid.New(), ClientName: "María", ClientEmail: "maria@example.com", StartTime: "14:30:00"},
		{AppointmentID: uuid.New(), ClientID: uuid.New(), ClientName: "Juan", ClientEmail: "juan@example.com", StartTime: "09:00:00"},
	}
	lister := &mockLister{rows: rows}
	sender := &mockSender{failIndex: -1}
	sent, skipped := SendAppointmentRemindersWithLister(ctx, nil, date, sender, lister)
	if sent != 2 || skipped != 0 {
		t.Errorf("all sent: got sent=%d skipped=%d, want 2,0", sent, skipped)
	}
	if len(sender.calls) != 2 {
		t.Fatalf("sender calls: got %d, want 2", len(sender.calls))
	}
	wantDateStr := "12/02/2025"
	for i, c := range sender.calls {
		if c.dateStr != wantDateStr {
			t.Errorf("call %d dateStr: got %q, want %q", i, c.dateStr, wantDateStr)
		}
		if c.fullName != rows[i].ClientName || c.to != rows[i].ClientEmail {
			t.Errorf("call %d: to=%q name=%q", i, c.to, c.fullName)
		}
	}
	if sender.calls[0].timeStr != "14:30" {
		t.Errorf("time trimmed: got %q, want %q", sender.calls[0].timeStr, "14:30")
	}
}

func TestSendAppointmentRemindersWithLister_PartialFail(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	rows := []repo.AppointmentReminderRow{
		{AppointmentID: uuid.New(), ClientName: "María", ClientEmail: "maria@example.com", StartTime: "10:00:00"},
		{AppointmentID: uuid.New(), ClientName: "Juan", ClientEmail: "juan@example.com", StartTime: "11:00:00"},
		{AppointmentID: uuid.New(), ClientName: "Pedro", ClientEmail: "pedro@example.com", StartTime: "12:00:00"},
	}
	lister := &mockLister{rows: rows}
	sender := &mockSender{failIndex: 1}
	sent, skipped := SendAppointmentRemindersWithLister(ctx, nil, date, sender, lister)
	if sent != 2 || skipped != 1 {
		t.Errorf("partial fail: got sent=%d skipped=%d, want 2,1", sent, skipped)
	}
}

func TestDefaultEmailSender_NilWhenNotConfigured(t *testing.T) {
	if DefaultEmailSender(nil) != nil {
		t.Error("expected nil for nil config")
	}
	if DefaultEmailSender(&email.Config{FromAddr: "a@b.c"}) != nil {
		t.Error("expected nil when host empty")
	}
	if DefaultEmailSender(&email.Config{Host: "smtp.local"}) != nil {
		t.Error("expected nil when from empty")
	}
	if DefaultEmailSender(&email.Config{Host: "smtp.local", FromAddr: "a@b.c"}) == nil {
		t.Error("expected sender when configured")
	}
}
