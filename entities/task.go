package entities

import (
	"time"
)

const (
	TaskStatusOpen       = "OPEN"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

const (
	TaskPriorityHigh   = "HIGH"
	TaskPriorityMedium = "MEDIUM"
)

// TaskItem ids for receipt-chasing tasks are derived as "task-<transactionId>"
// so regeneration is idempotent.
type TaskItem struct {
	ID          string `gorm:"primary_key" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`   // "OPEN", "IN_PROGRESS", "DONE"
	Priority    string `json:"priority"` // "HIGH", "MEDIUM"

	RelatedTransactionID *string    `gorm:"index" json:"related_transaction_id,omitempty"`
	DueDate              time.Time  `json:"due_date"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`

	Timestamp
}
