package seed

import (
	"context"
	"log"

	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/settings"
	"gorm.io/gorm"
)

// Run seeds the settings defaults and, on an empty users table, the first
// admin account. Existing rows always win; running twice is a no-op.
func Run(ctx context.Context, db *gorm.DB) error {
	if err := repo.SeedSettingDefaults(ctx, db, settings.Defaults()); err != nil {
		return err
	}

	var n int64
	if err := db.WithContext(ctx).Model(&repo.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("seed: users exist, skipping admin bootstrap")
		return nil
	}

	hash, err := auth.HashPassword("Admin123!")
	if err != nil {
		return err
	}
	admin := &repo.User{
		Email:              "admin@agendapsico.local",
		PasswordHash:       hash,
		FullName:           "Administración",
		Role:               auth.RoleAdmin,
		MustChangePassword: true,
	}
	if err := repo.CreateUser(ctx, db, admin); err != nil {
		return err
	}
	log.Printf("seed: created admin %s (temporary password, change on first login)", admin.Email)
	return nil
}
