package task

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/pkg/reconcile"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	TaskService interface {
		GetTasks(ctx context.Context, status string) ([]domain.TaskResponse, error)
		UpdateTask(ctx context.Context, id string, req domain.UpdateTaskRequest) error
		RegenerateTasks(ctx context.Context) ([]domain.TaskResponse, error)
	}

	taskService struct {
		taskRepository TaskRepository
		syncer         *reconcile.Syncer
	}
)

func NewTaskService(taskRepository TaskRepository, syncer *reconcile.Syncer) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		syncer:         syncer,
	}
}

func (s *taskService) GetTasks(ctx context.Context, status string) ([]domain.TaskResponse, error) {
	tasks, err := s.taskRepository.GetTasks(ctx, status)
	if err != nil {
		return nil, err
	}

	var response []domain.TaskResponse
	for _, task := range tasks {
		response = append(response, toTaskResponse(task))
	}
	return response, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, req domain.UpdateTaskRequest) error {
	task, err := s.taskRepository.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	task.Status = req.Status
	if req.Status == entities.TaskStatusDone {
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	return s.taskRepository.UpdateTask(ctx, task)
}

// RegenerateTasks forces a reconciliation pass and returns the resulting open
// task list. Mutating endpoints already trigger this implicitly; the explicit
// endpoint exists for recovery after manual database edits.
func (s *taskService) RegenerateTasks(ctx context.Context) ([]domain.TaskResponse, error) {
	if err := s.syncer.AfterTransactionsChanged(ctx); err != nil {
		return nil, err
	}
	return s.GetTasks(ctx, entities.TaskStatusOpen)
}

func toTaskResponse(task *entities.TaskItem) domain.TaskResponse {
	return domain.TaskResponse{
		ID:                   task.ID,
		Title:                task.Title,
		Description:          task.Description,
		Status:               task.Status,
		Priority:             task.Priority,
		RelatedTransactionID: task.RelatedTransactionID,
		DueDate:              task.DueDate,
		CompletedAt:          task.CompletedAt,
		CreatedAt:            task.CreatedAt,
	}
}
