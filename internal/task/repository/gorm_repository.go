package repository

import (
	"errors"
	"time"

	"taskflow-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.sort_order ASC")
		}).
		Preload("Category").
		Preload("Reminders").
		Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUserID(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.sort_order ASC")
		}).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(task).Error
}

func (r *gormTaskRepository) Delete(id string) error {
	return r.db.Select("Subtasks", "Reminders").Delete(&domain.Task{ID: id}).Error
}
