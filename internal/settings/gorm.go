package settings

import (
	"context"
	"errors"

	"whatsapp-console/internal/models"
	pkgmodels "whatsapp-console/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context) (*pkgmodels.SavedConfig, error) {
	var setting models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", Key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(setting.Value)
}

func (s *GormStore) Save(ctx context.Context, cfg pkgmodels.SavedConfig) error {
	value, err := encode(cfg)
	if err != nil {
		return err
	}
	// Upsert on the key
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.SystemSetting{Key: Key, Value: value}).Error
}

func (s *GormStore) Delete(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("key = ?", Key).Delete(&models.SystemSetting{}).Error
}
