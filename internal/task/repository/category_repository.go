package repository

import (
	"errors"
	"time"

	"taskflow-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &gormCategoryRepository{db: db}
}

func (r *gormCategoryRepository) Create(category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()
	return r.db.Create(category).Error
}

func (r *gormCategoryRepository) FindByID(id string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindByUserID(userID string) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *gormCategoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *gormCategoryRepository) Delete(id string) error {
	// Tasks keep their category_id; a dangling reference renders as
	// "no category" on the client.
	return r.db.Delete(&domain.Category{}, "id = ?", id).Error
}
