package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is one individually keyed configuration row. Values are stored
// as raw strings and coerced at read time (internal/settings).
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func ListSettings(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var rows []Setting
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}

// UpsertSetting inserts the key or overwrites its value on conflict.
func UpsertSetting(ctx context.Context, db *gorm.DB, key, value string) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// SeedSettingDefaults inserts missing keys only; existing values win.
func SeedSettingDefaults(ctx context.Context, db *gorm.DB, defaults map[string]string) error {
	for k, v := range defaults {
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&Setting{Key: k, Value: v}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
