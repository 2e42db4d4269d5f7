package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"not null"`
	Email       string
	Phone       string
	TherapistID *uuid.UUID `gorm:"type:uuid;index"`
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ListClients(ctx context.Context, db *gorm.DB, therapistID *uuid.UUID) ([]Client, error) {
	var list []Client
	q := db.WithContext(ctx).Order("full_name")
	if therapistID != nil {
		q = q.Where("therapist_id = ?", *therapistID)
	}
	err := q.Find(&list).Error
	return list, err
}

func ClientByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Client, error) {
	var c Client
	err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateClient(ctx context.Context, db *gorm.DB, c *Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return db.WithContext(ctx).Create(c).Error
}

func UpdateClient(ctx context.Context, db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = gorm.Expr("now()")
	return db.WithContext(ctx).Model(&Client{}).Where("id = ?", id).Updates(updates).Error
}

func DeleteClient(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&Client{}).Error
}
