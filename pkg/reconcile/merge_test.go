package reconcile

import (
	"testing"
	"time"

	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ledgerTx(externalID, description string, amount float64, invoiceType, invoiceNumber string) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		ExternalID:    externalID,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:   description,
		Amount:        amount,
		InvoiceType:   invoiceType,
		InvoiceNumber: invoiceNumber,
	}
}

func TestMergeTransactionsInsertsNewPayload(t *testing.T) {
	incoming := []domain.LedgerTransaction{
		ledgerTx("A", "Office supplies", 100, entities.InvoiceTypeIncoming, ""),
	}

	next, notifications, stats := MergeTransactions(incoming, nil, nil, mergeNow)

	require.Len(t, next, 1)
	tx := next[0]
	assert.Equal(t, "tx-A", tx.ID)
	require.NotNil(t, tx.ExternalID)
	assert.Equal(t, "A", *tx.ExternalID)
	assert.Equal(t, entities.TransactionStatusMissingReceipt, tx.Status)
	assert.Equal(t, entities.TransactionSourceLexoffice, tx.Source)
	assert.Equal(t, -100.0, tx.Amount, "incoming invoices carry a negative amount")
	assert.Len(t, notifications, 1)
	assert.Equal(t, ImportStats{Imported: 1, MissingReceipts: 1}, stats)
}

func TestMergeTransactionsIdempotentReimport(t *testing.T) {
	incoming := []domain.LedgerTransaction{
		ledgerTx("A", "Office supplies", 100, entities.InvoiceTypeIncoming, ""),
	}

	first, _, firstStats := MergeTransactions(incoming, nil, nil, mergeNow)
	require.Len(t, first, 1)
	assert.Equal(t, 1, firstStats.Imported)

	second, _, secondStats := MergeTransactions(incoming, first, nil, mergeNow.Add(time.Hour))

	require.Len(t, second, 1, "re-importing the same externalId must not duplicate")
	assert.Equal(t, 0, secondStats.Imported)
	assert.Equal(t, 1, secondStats.Updated)
	assert.Equal(t, 0, secondStats.Skipped)
	assert.Equal(t, "tx-A", second[0].ID)
}

func TestMergeTransactionsLinksByInvoiceNumber(t *testing.T) {
	docID := uuid.New()
	doc := &entities.Document{ID: docID, InvoiceNumber: "INV-1"}
	index := BuildInvoiceIndex([]*entities.Document{doc})

	incoming := []domain.LedgerTransaction{
		ledgerTx("A", "Consulting", 100, entities.InvoiceTypeOutgoing, "INV-1"),
	}

	next, _, stats := MergeTransactions(incoming, nil, index, mergeNow)

	require.Len(t, next, 1)
	require.NotNil(t, next[0].DocumentID)
	assert.Equal(t, docID.String(), *next[0].DocumentID)
	assert.Equal(t, entities.TransactionStatusComplete, next[0].Status)
	assert.Equal(t, 0, stats.MissingReceipts)
}

func TestMergeTransactionsInvoiceLookupIsCaseInsensitive(t *testing.T) {
	docID := uuid.New()
	index := BuildInvoiceIndex([]*entities.Document{{ID: docID, InvoiceNumber: "INV-42"}})

	next, _, _ := MergeTransactions(
		[]domain.LedgerTransaction{ledgerTx("B", "Hosting", 20, entities.InvoiceTypeIncoming, "inv-42")},
		nil, index, mergeNow,
	)

	require.NotNil(t, next[0].DocumentID)
	assert.Equal(t, docID.String(), *next[0].DocumentID)
}

func TestMergeTransactionsPreservesExistingLinkOnUpdate(t *testing.T) {
	docID := uuid.NewString()
	externalID := "A"
	existing := []*entities.AccountingTransaction{{
		ID:         "tx-A",
		ExternalID: &externalID,
		DocumentID: &docID,
		Status:     entities.TransactionStatusComplete,
	}}

	// The payload knows nothing about the manual link; it must survive.
	next, _, stats := MergeTransactions(
		[]domain.LedgerTransaction{ledgerTx("A", "Updated description", 50, entities.InvoiceTypeIncoming, "")},
		existing, nil, mergeNow,
	)

	require.Len(t, next, 1)
	require.NotNil(t, next[0].DocumentID)
	assert.Equal(t, docID, *next[0].DocumentID)
	assert.Equal(t, entities.TransactionStatusComplete, next[0].Status)
	assert.Equal(t, "Updated description", next[0].Description)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.MissingReceipts)
}

func TestMergeTransactionsPrefersFreshLink(t *testing.T) {
	oldDoc := uuid.NewString()
	newDoc := uuid.New()
	externalID := "A"
	existing := []*entities.AccountingTransaction{{
		ID:         "tx-A",
		ExternalID: &externalID,
		DocumentID: &oldDoc,
		Status:     entities.TransactionStatusComplete,
	}}
	index := BuildInvoiceIndex([]*entities.Document{{ID: newDoc, InvoiceNumber: "INV-9"}})

	next, _, _ := MergeTransactions(
		[]domain.LedgerTransaction{ledgerTx("A", "Re-linked", 10, entities.InvoiceTypeIncoming, "INV-9")},
		existing, index, mergeNow,
	)

	require.NotNil(t, next[0].DocumentID)
	assert.Equal(t, newDoc.String(), *next[0].DocumentID)
}

func TestMergeTransactionsLeavesUnmatchedPointerIdentical(t *testing.T) {
	externalID := "B"
	untouched := &entities.AccountingTransaction{ID: "tx-B", ExternalID: &externalID}
	existing := []*entities.AccountingTransaction{untouched}

	next, _, _ := MergeTransactions(
		[]domain.LedgerTransaction{ledgerTx("A", "New", 10, entities.InvoiceTypeIncoming, "")},
		existing, nil, mergeNow,
	)

	require.Len(t, next, 2)
	assert.Same(t, untouched, next[0])
}

func TestMergeTransactionsDuplicateExternalIDWithinBatch(t *testing.T) {
	incoming := []domain.LedgerTransaction{
		ledgerTx("A", "First", 10, entities.InvoiceTypeIncoming, ""),
		ledgerTx("A", "Second", 20, entities.InvoiceTypeIncoming, ""),
	}

	next, _, stats := MergeTransactions(incoming, nil, nil, mergeNow)

	require.Len(t, next, 1)
	assert.Equal(t, "Second", next[0].Description)
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Updated)
}

func TestBuildInvoiceIndexFirstClaimWins(t *testing.T) {
	first := &entities.Document{ID: uuid.New(), InvoiceNumber: "INV-1"}
	second := &entities.Document{ID: uuid.New(), InvoiceNumber: "inv-1"}

	index := BuildInvoiceIndex([]*entities.Document{first, second})

	assert.Equal(t, first.ID.String(), index["inv-1"])
	assert.Len(t, index, 1)
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, 25.0, signedAmount(-25, entities.InvoiceTypeOutgoing))
	assert.Equal(t, -25.0, signedAmount(25, entities.InvoiceTypeIncoming))
	assert.Equal(t, 7.5, signedAmount(7.5, ""))
}
