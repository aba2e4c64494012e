package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetTasks    = "tasks retrieved successfully"
	MessageSuccessUpdateTask  = "task updated successfully"
	MessageSuccessRegenerated = "tasks regenerated successfully"

	MessageFailedGetTasks   = "failed to retrieve tasks"
	MessageFailedUpdateTask = "failed to update task"
	MessageFailedRegenerate = "failed to regenerate tasks"

	ErrTaskNotFound = errors.New("task not found")
)

type (
	UpdateTaskRequest struct {
		Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
	}

	TaskResponse struct {
		ID                   string     `json:"id"`
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		Status               string     `json:"status"`
		Priority             string     `json:"priority"`
		RelatedTransactionID *string    `json:"related_transaction_id,omitempty"`
		DueDate              time.Time  `json:"due_date"`
		CompletedAt          *time.Time `json:"completed_at,omitempty"`
		CreatedAt            time.Time  `json:"created_at"`
	}
)
