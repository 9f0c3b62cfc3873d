package repository

import (
	"time"

	"taskflow-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormReminderRepository struct {
	db *gorm.DB
}

func NewGormReminderRepository(db *gorm.DB) ReminderRepository {
	return &gormReminderRepository{db: db}
}

func (r *gormReminderRepository) Create(reminder *domain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.CreatedAt = time.Now()
	return r.db.Create(reminder).Error
}

func (r *gormReminderRepository) FindDue(now time.Time) ([]*domain.DueReminder, error) {
	var rows []*domain.DueReminder
	err := r.db.Table("reminders").
		Select(`reminders.id, reminders.task_id, reminders.user_id, reminders.remind_at,
			reminders.recurrence,
			tasks.title AS task_title, tasks.description AS task_description,
			tasks.due_date AS task_due_date, tasks.priority AS task_priority,
			users.email AS user_email, users.name AS user_name`).
		Joins("JOIN tasks ON tasks.id = reminders.task_id").
		Joins("JOIN users ON users.id = reminders.user_id").
		Where("reminders.is_sent = ? AND reminders.remind_at <= ?", false, now).
		Order("reminders.remind_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *gormReminderRepository) MarkSent(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.Reminder{}).Where("id IN ?", ids).
		Update("is_sent", true).Error
}
