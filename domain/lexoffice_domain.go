package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSendDocuments = "documents sent to lexoffice"
	MessageFailedSendDocuments  = "failed to send documents to lexoffice"

	ErrLexofficeNotConfigured = errors.New("lexoffice API not configured")
	ErrLexofficeRequestFailed = errors.New("lexoffice request failed")
)

type (
	// LedgerTransaction is one transaction payload as returned by the ledger
	// provider's date-range listing.
	LedgerTransaction struct {
		ExternalID    string    `json:"id"`
		Date          time.Time `json:"voucherDate"`
		Description   string    `json:"description"`
		Amount        float64   `json:"amount"`
		InvoiceType   string    `json:"invoiceType"`
		TaxCategory   string    `json:"taxCategory"`
		InvoiceNumber string    `json:"invoiceNumber"`
	}

	LedgerVoucher struct {
		ID            string    `json:"id"`
		VoucherNumber string    `json:"voucherNumber"`
		VoucherDate   time.Time `json:"voucherDate"`
		TotalAmount   float64   `json:"totalGrossAmount"`
		Files         []string  `json:"files"`
	}

	SendDocumentsRequest struct {
		DocumentIDs []string `json:"document_ids" validate:"required,min=1,dive,uuid"`
	}

	SendItemResult struct {
		DocumentID string `json:"document_id"`
		VoucherID  string `json:"voucher_id,omitempty"`
		Error      string `json:"error,omitempty"`
	}

	SendProgress struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	}

	SendDocumentsResponse struct {
		Succeeded []SendItemResult `json:"succeeded"`
		Failed    []SendItemResult `json:"failed"`
	}
)
