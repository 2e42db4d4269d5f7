package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses as stored.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is one booked session. StartTime and EndTime are strings
// ("09:00:00"); PostgreSQL TIME is returned as string by the driver.
// DurationMinutes is optional and takes precedence over end-start when the
// stats engine derives booked minutes.
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TherapistID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentDate time.Time `gorm:"type:date;not null"`
	StartTime       string    `gorm:"column:start_time;type:time"`
	EndTime         string    `gorm:"column:end_time;type:time"`
	DurationMinutes *int
	Status          string `gorm:"not null;default:pending"`
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AppointmentFilter narrows ListAppointments; nil fields are ignored.
type AppointmentFilter struct {
	TherapistID *uuid.UUID
	ClientID    *uuid.UUID
	From        *time.Time
	To          *time.Time
	Status      string
}

func ListAppointments(ctx context.Context, db *gorm.DB, f AppointmentFilter) ([]Appointment, error) {
	var list []Appointment
	q := db.WithContext(ctx).Order("appointment_date, start_time")
	if f.TherapistID != nil {
		q = q.Where("therapist_id = ?", *f.TherapistID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("appointment_date <= ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	err := q.Find(&list).Error
	return list, err
}

func AppointmentByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func CreateAppointment(ctx context.Context, db *gorm.DB, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return db.WithContext(ctx).Create(a).Error
}

// UpdateAppointment applies only the provided snake_case columns.
func UpdateAppointment(ctx context.Context, db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = gorm.Expr("now()")
	return db.WithContext(ctx).Model(&Appointment{}).Where("id = ?", id).Updates(updates).Error
}

func DeleteAppointment(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&Appointment{}).Error
}

// AppointmentReminderRow holds what is needed to send one reminder email.
type AppointmentReminderRow struct {
	AppointmentID   uuid.UUID
	ClientID        uuid.UUID
	ClientName      string
	ClientEmail     string
	AppointmentDate time.Time
	StartTime       string
}

// ListAppointmentsForReminder returns non-cancelled appointments on the
// given date for clients with an email on file.
func ListAppointmentsForReminder(ctx context.Context, db *gorm.DB, date time.Time) ([]AppointmentReminderRow, error) {
	dateStr := date.Format("2006-01-02")
	var list []AppointmentReminderRow
	err := db.WithContext(ctx).Raw(`
		SELECT a.id AS appointment_id, c.id AS client_id, c.full_name AS client_name, TRIM(c.email) AS client_email, a.appointment_date, a.start_time
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.appointment_date = ?::date
		  AND a.status IN ('pending', 'confirmed')
		  AND c.email IS NOT NULL AND TRIM(c.email) != ''
		ORDER BY a.start_time, c.full_name
	`, dateStr).Scan(&list).Error
	return list, err
}
