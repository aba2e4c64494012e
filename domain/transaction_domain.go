package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetTransactions    = "transactions retrieved successfully"
	MessageSuccessCreateTransaction  = "transaction created successfully"
	MessageSuccessUpdateTransaction  = "transaction updated successfully"
	MessageSuccessDeleteTransaction  = "transaction deleted successfully"
	MessageSuccessImportTransactions = "transactions imported successfully"

	MessageFailedGetTransactions    = "failed to retrieve transactions"
	MessageFailedCreateTransaction  = "failed to create transaction"
	MessageFailedUpdateTransaction  = "failed to update transaction"
	MessageFailedDeleteTransaction  = "failed to delete transaction"
	MessageFailedImportTransactions = "failed to import transactions"

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrInvalidAmount       = errors.New("invalid amount")
)

type (
	CreateTransactionRequest struct {
		Date        string  `json:"date" validate:"required"`
		Description string  `json:"description" validate:"required"`
		Amount      float64 `json:"amount" validate:"required"`
		InvoiceType string  `json:"invoice_type" validate:"required,oneof=INCOMING OUTGOING"`
		TaxCategory string  `json:"tax_category" validate:"omitempty"`
		DocumentID  string  `json:"document_id" validate:"omitempty,uuid"`
		Draft       bool    `json:"draft"`
	}

	UpdateTransactionRequest struct {
		Date        string   `json:"date" validate:"omitempty"`
		Description string   `json:"description" validate:"omitempty"`
		Amount      *float64 `json:"amount" validate:"omitempty"`
		InvoiceType string   `json:"invoice_type" validate:"omitempty,oneof=INCOMING OUTGOING"`
		TaxCategory string   `json:"tax_category" validate:"omitempty"`
		DocumentID  *string  `json:"document_id" validate:"omitempty"`
	}

	ImportTransactionsRequest struct {
		StartDate string `json:"start_date" validate:"required"`
		EndDate   string `json:"end_date" validate:"required"`
	}

	ImportTransactionsResponse struct {
		Imported        int      `json:"imported"`
		Updated         int      `json:"updated"`
		Skipped         int      `json:"skipped"`
		MissingReceipts int      `json:"missing_receipts"`
		Notifications   []string `json:"notifications"`
		Simulated       bool     `json:"simulated"`
	}

	TransactionResponse struct {
		ID          string    `json:"id"`
		ExternalID  *string   `json:"external_id,omitempty"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		InvoiceType string    `json:"invoice_type"`
		TaxCategory string    `json:"tax_category,omitempty"`
		DocumentID  *string   `json:"document_id,omitempty"`
		Status      string    `json:"status"`
		Source      string    `json:"source"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
