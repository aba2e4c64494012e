package reconcile

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"fmt"
	"math"
	"strings"
	"time"
)

// ImportStats aggregates one merge pass. Skipped is always 0: the merge is
// additive/corrective only and never drops a payload.
type ImportStats struct {
	Imported        int `json:"imported"`
	Updated         int `json:"updated"`
	Skipped         int `json:"skipped"`
	MissingReceipts int `json:"missing_receipts"`
}

// MergeTransactions merges a batch of ledger-provider payloads into the local
// transaction list. It performs no I/O: (incoming, existing, invoiceIndex) in,
// (next, notifications, stats) out.
//
// Matching is by externalId only. A matched transaction is overwritten in
// place (fresh document link preferred, existing link preserved when the
// payload resolves none); an unmatched payload is inserted under the
// deterministic id "tx-<externalId>", which makes re-imports idempotent.
// invoiceIndex maps lower-cased invoice numbers to document ids.
//
// Untouched transactions are returned pointer-identical so callers can skip
// re-persisting them.
func MergeTransactions(
	incoming []domain.LedgerTransaction,
	existing []*entities.AccountingTransaction,
	invoiceIndex map[string]string,
	now time.Time,
) ([]*entities.AccountingTransaction, []string, ImportStats) {
	next := make([]*entities.AccountingTransaction, len(existing))
	copy(next, existing)

	byExternal := make(map[string]int, len(existing))
	for i, tx := range existing {
		if tx.ExternalID != nil {
			byExternal[*tx.ExternalID] = i
		}
	}

	var notifications []string
	var stats ImportStats

	for _, payload := range incoming {
		var freshLink *string
		if key := strings.ToLower(strings.TrimSpace(payload.InvoiceNumber)); key != "" {
			if docID, ok := invoiceIndex[key]; ok {
				id := docID
				freshLink = &id
			}
		}

		if idx, ok := byExternal[payload.ExternalID]; ok {
			updated := *next[idx]
			updated.Date = payload.Date
			updated.Description = payload.Description
			updated.Amount = signedAmount(payload.Amount, payload.InvoiceType)
			updated.InvoiceType = payload.InvoiceType
			updated.TaxCategory = payload.TaxCategory
			if freshLink != nil {
				updated.DocumentID = freshLink
			}
			updated.Status = deriveStatus(updated.DocumentID)
			updated.Source = entities.TransactionSourceLexoffice
			updated.UpdatedAt = now
			if updated.Status == entities.TransactionStatusMissingReceipt {
				stats.MissingReceipts++
			}
			next[idx] = &updated
			stats.Updated++
			notifications = append(notifications, fmt.Sprintf(
				"Updated transaction %q from lexoffice (%s)", payload.Description, payload.ExternalID))
			continue
		}

		externalID := payload.ExternalID
		inserted := &entities.AccountingTransaction{
			ID:          "tx-" + externalID,
			ExternalID:  &externalID,
			Date:        payload.Date,
			Description: payload.Description,
			Amount:      signedAmount(payload.Amount, payload.InvoiceType),
			InvoiceType: payload.InvoiceType,
			TaxCategory: payload.TaxCategory,
			DocumentID:  freshLink,
			Status:      deriveStatus(freshLink),
			Source:      entities.TransactionSourceLexoffice,
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if inserted.Status == entities.TransactionStatusMissingReceipt {
			stats.MissingReceipts++
		}
		byExternal[externalID] = len(next)
		next = append(next, inserted)
		stats.Imported++
		notifications = append(notifications, fmt.Sprintf(
			"Imported transaction %q from lexoffice (%s)", payload.Description, payload.ExternalID))
	}

	return next, notifications, stats
}

// BuildInvoiceIndex maps lower-cased invoice numbers to document ids for the
// merge lookup. Later documents never displace an earlier claim on the same
// invoice number.
func BuildInvoiceIndex(docs []*entities.Document) map[string]string {
	index := make(map[string]string, len(docs))
	for _, doc := range docs {
		key := strings.ToLower(strings.TrimSpace(doc.InvoiceNumber))
		if key == "" {
			continue
		}
		if _, taken := index[key]; !taken {
			index[key] = doc.ID.String()
		}
	}
	return index
}

func deriveStatus(documentID *string) string {
	if documentID != nil {
		return entities.TransactionStatusComplete
	}
	return entities.TransactionStatusMissingReceipt
}

// signedAmount derives the amount sign from the invoice type; the sign on the
// wire is not trusted.
func signedAmount(amount float64, invoiceType string) float64 {
	switch invoiceType {
	case entities.InvoiceTypeOutgoing:
		return math.Abs(amount)
	case entities.InvoiceTypeIncoming:
		return -math.Abs(amount)
	default:
		return amount
	}
}
