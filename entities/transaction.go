package entities

import (
	"time"
)

const (
	TransactionStatusComplete       = "COMPLETE"
	TransactionStatusMissingReceipt = "MISSING_RECEIPT"
	TransactionStatusDraft          = "DRAFT"
)

const (
	TransactionSourceManual    = "MANUAL"
	TransactionSourceLexoffice = "LEXOFFICE"
	TransactionSourceAI        = "AI"
)

// AccountingTransaction uses a string primary key on purpose: transactions
// imported from the ledger provider get the deterministic id "tx-<externalId>",
// which is the idempotency key for repeated imports.
type AccountingTransaction struct {
	ID         string  `gorm:"primary_key" json:"id"`
	ExternalID *string `gorm:"index" json:"external_id,omitempty"`

	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // positive = outgoing invoice, negative = incoming
	InvoiceType string    `json:"invoice_type"`
	TaxCategory string    `json:"tax_category,omitempty"`

	DocumentID *string `gorm:"index" json:"document_id,omitempty"`
	Status     string  `json:"status"` // "COMPLETE", "MISSING_RECEIPT", "DRAFT"
	Source     string  `json:"source"` // "MANUAL", "LEXOFFICE", "AI"

	Timestamp
}
