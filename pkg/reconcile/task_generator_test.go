package reconcile

import (
	"testing"
	"time"

	"Taxflow-Backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func missingTx(id string, amount float64) *entities.AccountingTransaction {
	return &entities.AccountingTransaction{
		ID:          id,
		Description: "Missing receipt tx",
		Amount:      amount,
		Status:      entities.TransactionStatusMissingReceipt,
		Date:        taskNow,
	}
}

func TestGenerateTasksCreatesOpenTaskForMissingReceipt(t *testing.T) {
	tasks, changed := GenerateTasks(nil, []*entities.AccountingTransaction{missingTx("tx-1", -50)}, taskNow)

	require.True(t, changed)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "task-tx-1", task.ID)
	assert.Equal(t, entities.TaskStatusOpen, task.Status)
	assert.Equal(t, entities.TaskPriorityMedium, task.Priority)
	assert.Equal(t, taskNow.AddDate(0, 0, 7), task.DueDate)
	require.NotNil(t, task.RelatedTransactionID)
	assert.Equal(t, "tx-1", *task.RelatedTransactionID)
}

func TestGenerateTasksPriorityThreshold(t *testing.T) {
	txs := []*entities.AccountingTransaction{
		missingTx("tx-low", -999.99),
		missingTx("tx-high", -1000),
		missingTx("tx-income", 1500),
	}

	tasks, _ := GenerateTasks(nil, txs, taskNow)

	require.Len(t, tasks, 3)
	assert.Equal(t, entities.TaskPriorityMedium, tasks[0].Priority)
	assert.Equal(t, entities.TaskPriorityHigh, tasks[1].Priority)
	assert.Equal(t, entities.TaskPriorityHigh, tasks[2].Priority, "threshold applies to the absolute amount")
}

func TestGenerateTasksIdempotent(t *testing.T) {
	txs := []*entities.AccountingTransaction{missingTx("tx-1", -50)}

	first, _ := GenerateTasks(nil, txs, taskNow)
	second, changed := GenerateTasks(first, txs, taskNow.Add(time.Hour))

	assert.False(t, changed, "regeneration without transaction changes is a no-op")
	require.Len(t, second, 1)
	assert.Same(t, first[0], second[0])
}

func TestGenerateTasksClosesResolvedTask(t *testing.T) {
	txID := "tx-1"
	task := &entities.TaskItem{
		ID:                   "task-tx-1",
		Status:               entities.TaskStatusOpen,
		RelatedTransactionID: &txID,
	}
	resolved := &entities.AccountingTransaction{ID: txID, Status: entities.TransactionStatusComplete}

	next, changed := GenerateTasks([]*entities.TaskItem{task}, []*entities.AccountingTransaction{resolved}, taskNow)

	require.True(t, changed)
	require.Len(t, next, 1)
	assert.Equal(t, entities.TaskStatusDone, next[0].Status)
	require.NotNil(t, next[0].CompletedAt)
	assert.Equal(t, taskNow, *next[0].CompletedAt)
	assert.Equal(t, entities.TaskStatusOpen, task.Status, "input must not be mutated")
}

func TestGenerateTasksCompletedAtSetOnce(t *testing.T) {
	txID := "tx-1"
	completedAt := taskNow.Add(-24 * time.Hour)
	task := &entities.TaskItem{
		ID:                   "task-tx-1",
		Status:               entities.TaskStatusInProgress,
		RelatedTransactionID: &txID,
		CompletedAt:          &completedAt,
	}

	next, _ := GenerateTasks([]*entities.TaskItem{task}, nil, taskNow)

	require.NotNil(t, next[0].CompletedAt)
	assert.Equal(t, completedAt, *next[0].CompletedAt, "completedAt is never overwritten once present")
}

func TestGenerateTasksNeverResurrectsDoneTask(t *testing.T) {
	txID := "tx-1"
	done := &entities.TaskItem{
		ID:                   "task-tx-1",
		Status:               entities.TaskStatusDone,
		RelatedTransactionID: &txID,
	}

	// The transaction regressed to MISSING_RECEIPT after its task was closed.
	next, changed := GenerateTasks([]*entities.TaskItem{done}, []*entities.AccountingTransaction{missingTx(txID, -50)}, taskNow)

	require.True(t, changed)
	require.Len(t, next, 2)
	assert.Equal(t, entities.TaskStatusDone, next[0].Status, "the old task stays DONE")
	assert.Equal(t, "task-tx-1-2", next[1].ID, "regression gets a versioned id")
	assert.Equal(t, entities.TaskStatusOpen, next[1].Status)
}

func TestGenerateTasksPassesThroughUnrelatedTasks(t *testing.T) {
	manual := &entities.TaskItem{ID: "manual-1", Status: entities.TaskStatusOpen}

	next, changed := GenerateTasks([]*entities.TaskItem{manual}, nil, taskNow)

	assert.False(t, changed)
	assert.Same(t, manual, next[0])
}

func TestGenerateTasksInProgressTaskStillCovers(t *testing.T) {
	txID := "tx-1"
	inProgress := &entities.TaskItem{
		ID:                   "task-tx-1",
		Status:               entities.TaskStatusInProgress,
		RelatedTransactionID: &txID,
	}

	next, changed := GenerateTasks([]*entities.TaskItem{inProgress}, []*entities.AccountingTransaction{missingTx(txID, -50)}, taskNow)

	assert.False(t, changed, "an in-progress task still covers its transaction")
	require.Len(t, next, 1)
}
