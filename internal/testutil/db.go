package testutil

import (
	"context"
	"os"

	"github.com/uveral/agendapsico/internal/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDB opens a GORM connection from DATABASE_URL. Integration tests skip
// themselves when it returns nil.
func OpenDB(ctx context.Context) (*gorm.DB, string) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, ""
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, url
	}
	if _, err := db.DB(); err != nil {
		return nil, url
	}
	return db, url
}

func MustMigrate(ctx context.Context, db *gorm.DB) error {
	return repo.AutoMigrate(db)
}
