package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Therapist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Specialty string
	Color     string // calendar color, "#RRGGBB"
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ListTherapists(ctx context.Context, db *gorm.DB, activeOnly bool) ([]Therapist, error) {
	var list []Therapist
	q := db.WithContext(ctx).Order("full_name")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func TherapistByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Therapist, error) {
	var t Therapist
	err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTherapist(ctx context.Context, db *gorm.DB, t *Therapist) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return db.WithContext(ctx).Create(t).Error
}

// UpdateTherapist applies only the provided fields; updates keys are
// snake_case column names.
func UpdateTherapist(ctx context.Context, db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = gorm.Expr("now()")
	return db.WithContext(ctx).Model(&Therapist{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteTherapist removes the therapist together with its working hours
// and login account. Appointments keep their rows for history.
func DeleteTherapist(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("therapist_id = ?", id).Delete(&WorkingHours{}).Error; err != nil {
			return err
		}
		if err := DeleteUserByTherapist(ctx, tx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Therapist{}).Error
	})
}
