package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHours is one recurring weekly block in which a therapist is
// bookable (day_of_week 0=Sunday .. 6=Saturday). Times are strings; the
// driver returns PostgreSQL TIME as string.
type WorkingHours struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TherapistID uuid.UUID `gorm:"type:uuid;index;not null"`
	DayOfWeek   int       `gorm:"not null"`
	StartTime   string    `gorm:"column:start_time;type:time"`
	EndTime     string    `gorm:"column:end_time;type:time"`
}

func (WorkingHours) TableName() string { return "therapist_working_hours" }

func ListWorkingHours(ctx context.Context, db *gorm.DB, therapistID uuid.UUID) ([]WorkingHours, error) {
	var list []WorkingHours
	err := db.WithContext(ctx).
		Where("therapist_id = ?", therapistID).
		Order("day_of_week, start_time").
		Find(&list).Error
	return list, err
}

// ReplaceWorkingHours swaps the therapist's whole weekly schedule: delete
// everything, then insert the new blocks, in one transaction.
func ReplaceWorkingHours(ctx context.Context, db *gorm.DB, therapistID uuid.UUID, blocks []WorkingHours) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("therapist_id = ?", therapistID).Delete(&WorkingHours{}).Error; err != nil {
			return err
		}
		for i := range blocks {
			blocks[i].TherapistID = therapistID
			if blocks[i].ID == uuid.Nil {
				blocks[i].ID = uuid.New()
			}
		}
		if len(blocks) == 0 {
			return nil
		}
		return tx.Create(&blocks).Error
	})
}
