package reconcile

import (
	"Taxflow-Backend/entities"
	"sort"
	"time"
)

// SyncTransactionLinks re-establishes the transaction-side invariant: a
// transaction whose documentId no longer names an existing document is reset
// to MISSING_RECEIPT with the link cleared. Unaffected transactions are
// returned pointer-identical to avoid spurious downstream writes.
func SyncTransactionLinks(
	docs []*entities.Document,
	txs []*entities.AccountingTransaction,
	now time.Time,
) ([]*entities.AccountingTransaction, bool) {
	known := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		known[doc.ID.String()] = struct{}{}
	}

	next := make([]*entities.AccountingTransaction, len(txs))
	copy(next, txs)
	changed := false

	for i, tx := range txs {
		if tx.DocumentID == nil {
			continue
		}
		if _, ok := known[*tx.DocumentID]; ok {
			continue
		}
		reset := *tx
		reset.DocumentID = nil
		reset.Status = entities.TransactionStatusMissingReceipt
		reset.UpdatedAt = now
		next[i] = &reset
		changed = true
	}

	return next, changed
}

// SyncDocumentLinks re-establishes the document-side invariant: every
// document's linkedTransactionIds is overwritten with the exact set of
// transactions pointing at it, but only when the membership actually differs.
func SyncDocumentLinks(
	docs []*entities.Document,
	txs []*entities.AccountingTransaction,
) ([]*entities.Document, bool) {
	linked := make(map[string][]string, len(docs))
	for _, tx := range txs {
		if tx.DocumentID == nil {
			continue
		}
		linked[*tx.DocumentID] = append(linked[*tx.DocumentID], tx.ID)
	}

	next := make([]*entities.Document, len(docs))
	copy(next, docs)
	changed := false

	for i, doc := range docs {
		want := linked[doc.ID.String()]
		if sameMembers(doc.LinkedTransactionIDs, want) {
			continue
		}
		updated := *doc
		updated.LinkedTransactionIDs = append([]string(nil), want...)
		sort.Strings(updated.LinkedTransactionIDs)
		next[i] = &updated
		changed = true
	}

	return next, changed
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}
