package task

import (
	"Taxflow-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	TaskRepository interface {
		GetTaskByID(ctx context.Context, id string) (*entities.TaskItem, error)
		UpdateTask(ctx context.Context, task *entities.TaskItem) error
		GetTasks(ctx context.Context, status string) ([]*entities.TaskItem, error)

		// Snapshot access for the task generator.
		ListTasks(ctx context.Context) ([]*entities.TaskItem, error)
		UpsertTasks(ctx context.Context, tasks []*entities.TaskItem) error
	}

	taskRepository struct {
		db *gorm.DB
	}
)

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetTaskByID(ctx context.Context, id string) (*entities.TaskItem, error) {
	var task entities.TaskItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) UpdateTask(ctx context.Context, task *entities.TaskItem) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) GetTasks(ctx context.Context, status string) ([]*entities.TaskItem, error) {
	var tasks []*entities.TaskItem
	query := r.db.WithContext(ctx)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListTasks(ctx context.Context) ([]*entities.TaskItem, error) {
	var tasks []*entities.TaskItem
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UpsertTasks(ctx context.Context, tasks []*entities.TaskItem) error {
	for _, task := range tasks {
		if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
			return err
		}
	}
	return nil
}
