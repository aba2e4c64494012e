package reconcile

import (
	"Taxflow-Backend/entities"
	"fmt"
	"math"
	"time"
)

const (
	taskIDPrefix          = "task-"
	taskDueDays           = 7
	highPriorityThreshold = 1000
)

// GenerateTasks derives missing-receipt follow-up tasks from the current
// transaction list. Tasks for still-missing transactions are kept untouched,
// tasks for resolved transactions transition to DONE (completedAt set once),
// tasks without a related transaction pass through, and uncovered missing
// transactions get a fresh OPEN task.
//
// Tasks are never deleted and a DONE task is never reopened: when a
// transaction regresses to MISSING_RECEIPT after its task was closed, a new
// task is created under the versioned id "task-<txId>-<n>" so the id scheme
// stays deterministic.
func GenerateTasks(
	tasks []*entities.TaskItem,
	txs []*entities.AccountingTransaction,
	now time.Time,
) ([]*entities.TaskItem, bool) {
	missing := make(map[string]*entities.AccountingTransaction, len(txs))
	for _, tx := range txs {
		if tx.Status == entities.TransactionStatusMissingReceipt {
			missing[tx.ID] = tx
		}
	}

	next := make([]*entities.TaskItem, len(tasks))
	copy(next, tasks)
	changed := false

	covered := make(map[string]struct{}, len(tasks))
	taken := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		taken[task.ID] = struct{}{}
	}

	for i, task := range tasks {
		if task.RelatedTransactionID == nil {
			continue
		}
		txID := *task.RelatedTransactionID
		if _, stillMissing := missing[txID]; stillMissing {
			if task.Status != entities.TaskStatusDone {
				covered[txID] = struct{}{}
			}
			continue
		}
		if task.Status == entities.TaskStatusDone {
			continue
		}
		done := *task
		done.Status = entities.TaskStatusDone
		if done.CompletedAt == nil {
			completedAt := now
			done.CompletedAt = &completedAt
		}
		done.UpdatedAt = now
		next[i] = &done
		changed = true
	}

	// Iterate the transaction slice, not the map, for deterministic output order.
	for _, tx := range txs {
		if _, isMissing := missing[tx.ID]; !isMissing {
			continue
		}
		if _, ok := covered[tx.ID]; ok {
			continue
		}
		txID := tx.ID
		task := &entities.TaskItem{
			ID:                   nextTaskID(txID, taken),
			Title:                fmt.Sprintf("Missing receipt: %s", tx.Description),
			Description:          fmt.Sprintf("Find and upload the receipt for %q (%.2f) dated %s.", tx.Description, tx.Amount, tx.Date.Format("2006-01-02")),
			Status:               entities.TaskStatusOpen,
			Priority:             taskPriority(tx.Amount),
			RelatedTransactionID: &txID,
			DueDate:              now.AddDate(0, 0, taskDueDays),
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		taken[task.ID] = struct{}{}
		covered[txID] = struct{}{}
		next = append(next, task)
		changed = true
	}

	return next, changed
}

// nextTaskID returns "task-<txId>", or the first free versioned id
// "task-<txId>-<n>" when the base id already belongs to a closed task.
func nextTaskID(txID string, taken map[string]struct{}) string {
	base := taskIDPrefix + txID
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func taskPriority(amount float64) string {
	if math.Abs(amount) >= highPriorityThreshold {
		return entities.TaskPriorityHigh
	}
	return entities.TaskPriorityMedium
}
