package repository

import (
	"errors"
	"time"

	"taskflow-backend/internal/task/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPreferenceRepository struct {
	db *gorm.DB
}

func NewGormPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &gormPreferenceRepository{db: db}
}

func (r *gormPreferenceRepository) Find(userID string) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *gormPreferenceRepository) Save(pref *domain.Preference) error {
	pref.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(pref).Error
}
