package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login account. Role is "admin" or "therapist"; therapist
// accounts point at their therapist row. MustChangePassword forces a
// credential rotation before normal app access.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"uniqueIndex;not null"`
	PasswordHash       string    `gorm:"not null"`
	FullName           string
	Role               string `gorm:"not null;default:therapist"`
	MustChangePassword bool
	TherapistID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func UserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error) {
	var u User
	err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func UserByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*User, error) {
	var u User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return db.WithContext(ctx).Create(u).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, id uuid.UUID, passwordHash string) error {
	return db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": gorm.Expr("now()")}).Error
}

func SetMustChangePassword(ctx context.Context, db *gorm.DB, id uuid.UUID, v bool) error {
	return db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"must_change_password": v, "updated_at": gorm.Expr("now()")}).Error
}

// DeleteUserByTherapist removes the login account linked to a therapist;
// used when the therapist itself is deleted.
func DeleteUserByTherapist(ctx context.Context, db *gorm.DB, therapistID uuid.UUID) error {
	return db.WithContext(ctx).Where("therapist_id = ?", therapistID).Delete(&User{}).Error
}
