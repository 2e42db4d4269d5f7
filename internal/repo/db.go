package repo

import (
	"strings"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model the service
// reads and writes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Therapist{},
		&Client{},
		&Appointment{},
		&WorkingHours{},
		&Setting{},
	)
}

// TimeStringToHHMM returns "HH:MM" from a DB time string ("HH:MM:SS" or
// "HH:MM"); PostgreSQL TIME columns come back as strings from the driver.
func TimeStringToHHMM(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
