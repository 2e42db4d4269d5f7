package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/uveral/agendapsico/internal/config"
	"github.com/uveral/agendapsico/internal/email"
	"github.com/uveral/agendapsico/internal/reminder"
	"github.com/uveral/agendapsico/internal/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	ctx := context.Background()
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db.DB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	loc, err := time.LoadLocation(cfg.CenterTimezone)
	if err != nil {
		log.Printf("CENTER_TZ=%s invalid, using UTC: %v", cfg.CenterTimezone, err)
		loc = time.UTC
	}
	now := time.Now().In(loc)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	sender := reminder.DefaultEmailSender(&email.Config{
		Host:     cfg.SMTPHost,
		Port:     email.PortFromString(cfg.SMTPPort),
		User:     cfg.SMTPUser,
		Pass:     cfg.SMTPPass,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromEmail,
	})
	sent, skipped := reminder.SendAppointmentReminders(ctx, db, tomorrow, sender)
	log.Printf("[reminder] done: sent=%d skipped=%d date=%s", sent, skipped, tomorrow.Format("2006-01-02"))
	os.Exit(0)
}
