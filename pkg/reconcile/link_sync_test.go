package reconcile

import (
	"testing"
	"time"

	"Taxflow-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var syncNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestSyncTransactionLinksResetsDanglingReference(t *testing.T) {
	gone := uuid.NewString()
	tx := &entities.AccountingTransaction{
		ID:         "tx-1",
		DocumentID: &gone,
		Status:     entities.TransactionStatusComplete,
	}

	next, changed := SyncTransactionLinks(nil, []*entities.AccountingTransaction{tx}, syncNow)

	require.True(t, changed)
	require.Len(t, next, 1)
	assert.Nil(t, next[0].DocumentID)
	assert.Equal(t, entities.TransactionStatusMissingReceipt, next[0].Status)
	assert.Equal(t, syncNow, next[0].UpdatedAt)
	assert.Equal(t, entities.TransactionStatusComplete, tx.Status, "input must not be mutated")
}

func TestSyncTransactionLinksLeavesValidLinksPointerIdentical(t *testing.T) {
	doc := &entities.Document{ID: uuid.New()}
	docID := doc.ID.String()
	linked := &entities.AccountingTransaction{ID: "tx-1", DocumentID: &docID, Status: entities.TransactionStatusComplete}
	unlinked := &entities.AccountingTransaction{ID: "tx-2", Status: entities.TransactionStatusMissingReceipt}

	next, changed := SyncTransactionLinks(
		[]*entities.Document{doc},
		[]*entities.AccountingTransaction{linked, unlinked},
		syncNow,
	)

	assert.False(t, changed)
	assert.Same(t, linked, next[0])
	assert.Same(t, unlinked, next[1])
}

func TestSyncDocumentLinksRecomputesExactSet(t *testing.T) {
	doc := &entities.Document{ID: uuid.New(), LinkedTransactionIDs: []string{"tx-stale"}}
	docID := doc.ID.String()
	txs := []*entities.AccountingTransaction{
		{ID: "tx-1", DocumentID: &docID},
		{ID: "tx-2", DocumentID: &docID},
		{ID: "tx-3"},
	}

	next, changed := SyncDocumentLinks([]*entities.Document{doc}, txs)

	require.True(t, changed)
	assert.ElementsMatch(t, []string{"tx-1", "tx-2"}, next[0].LinkedTransactionIDs)
	assert.Equal(t, []string{"tx-stale"}, doc.LinkedTransactionIDs, "input must not be mutated")
}

func TestSyncDocumentLinksOrderIndependentComparison(t *testing.T) {
	doc := &entities.Document{ID: uuid.New(), LinkedTransactionIDs: []string{"tx-2", "tx-1"}}
	docID := doc.ID.String()
	txs := []*entities.AccountingTransaction{
		{ID: "tx-1", DocumentID: &docID},
		{ID: "tx-2", DocumentID: &docID},
	}

	next, changed := SyncDocumentLinks([]*entities.Document{doc}, txs)

	assert.False(t, changed, "same membership in a different order is not a change")
	assert.Same(t, doc, next[0])
}

func TestSyncDocumentLinksClearsWhenNoTransactionsPoint(t *testing.T) {
	doc := &entities.Document{ID: uuid.New(), LinkedTransactionIDs: []string{"tx-1"}}

	next, changed := SyncDocumentLinks([]*entities.Document{doc}, nil)

	require.True(t, changed)
	assert.Empty(t, next[0].LinkedTransactionIDs)
}

func TestLinkInvariantsAfterDocumentDeletion(t *testing.T) {
	// Spec scenario: a transaction points at a deleted document; after the
	// sync pass the link is cleared and a follow-up task exists.
	deleted := uuid.NewString()
	tx := &entities.AccountingTransaction{
		ID:         "tx-9",
		DocumentID: &deleted,
		Status:     entities.TransactionStatusComplete,
		Amount:     -50,
	}

	txs, changed := SyncTransactionLinks(nil, []*entities.AccountingTransaction{tx}, syncNow)
	require.True(t, changed)

	tasks, changed := GenerateTasks(nil, txs, syncNow)
	require.True(t, changed)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-tx-9", tasks[0].ID)
	assert.Equal(t, entities.TaskStatusOpen, tasks[0].Status)
}

func TestSameMembers(t *testing.T) {
	assert.True(t, sameMembers(nil, nil))
	assert.True(t, sameMembers([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, sameMembers([]string{"a", "a"}, []string{"a", "b"}))
	assert.False(t, sameMembers([]string{"a"}, []string{"a", "b"}))
}
