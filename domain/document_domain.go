package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"Taxflow-Backend/entities"
)

var (
	MessageSuccessUploadDocument     = "document uploaded successfully"
	MessageSuccessGetDocuments       = "documents retrieved successfully"
	MessageSuccessUpdateDocument     = "document updated successfully"
	MessageSuccessDeleteDocument     = "document deleted successfully"
	MessageSuccessDeleteAllDocuments = "all documents deleted successfully"
	MessageSuccessBatchPatch         = "documents patched"
	MessageSuccessResolveDuplicate   = "duplicate resolved successfully"
	MessageSuccessGetDashboard       = "dashboard statistics retrieved successfully"

	MessageFailedUploadDocument   = "failed to upload document"
	MessageFailedGetDocuments     = "failed to retrieve documents"
	MessageFailedUpdateDocument   = "failed to update document"
	MessageFailedDeleteDocument   = "failed to delete document"
	MessageFailedBatchPatch       = "failed to patch documents"
	MessageFailedResolveDuplicate = "failed to resolve duplicate"
	MessageFailedGetDashboard     = "failed to retrieve dashboard statistics"

	ErrDocumentNotFound        = errors.New("document not found")
	ErrMissingFile             = errors.New("missing file")
	ErrInvalidDuplicateAction  = errors.New("invalid duplicate action")
	ErrDocumentNotADuplicate   = errors.New("document is not flagged as duplicate")
	ErrInvalidDocumentDate     = errors.New("invalid document date")
	ErrInvalidInvoiceType      = errors.New("invalid invoice type")
	ErrUnauthorizedDocument    = errors.New("unauthorized access to document")
	ErrDocumentHashUnavailable = errors.New("document hash unavailable")
)

const (
	DuplicateActionIgnore   = "ignore"
	DuplicateActionKeepBoth = "keep-both"
	DuplicateActionDelete   = "delete"
)

type (
	UploadDocumentRequest struct {
		File              *multipart.FileHeader `json:"file" form:"file" validate:"required"`
		StorageLocationID string                `json:"storage_location_id" form:"storage_location_id" validate:"omitempty,uuid"`
	}

	UploadDocumentResponse struct {
		ID            string  `json:"id"`
		FileName      string  `json:"file_name"`
		FileURL       string  `json:"file_url"`
		FileHash      *string `json:"file_hash,omitempty"`
		Status        string  `json:"status"`
		DuplicateOfID *string `json:"duplicate_of_id,omitempty"`
	}

	UpdateDocumentRequest struct {
		Vendor        string  `json:"vendor" validate:"omitempty"`
		TotalAmount   float64 `json:"total_amount" validate:"omitempty"`
		VatAmount     float64 `json:"vat_amount" validate:"omitempty"`
		InvoiceNumber string  `json:"invoice_number" validate:"omitempty"`
		TaxCategory   string  `json:"tax_category" validate:"omitempty"`
		InvoiceType   string  `json:"invoice_type" validate:"omitempty,oneof=INCOMING OUTGOING"`
		DocumentDate  string  `json:"document_date" validate:"omitempty"`
		Status        string  `json:"status" validate:"omitempty,oneof=OK MISSING_INVOICE SCREENSHOT ANALYZING POTENTIAL_DUPLICATE ARCHIVED ERROR"`
	}

	BatchPatchItem struct {
		ID    string                `json:"id" validate:"required,uuid"`
		Patch UpdateDocumentRequest `json:"patch"`
	}

	BatchPatchRequest struct {
		Items []BatchPatchItem `json:"items" validate:"required,dive"`
	}

	BatchPatchResult struct {
		Succeeded []string          `json:"succeeded"`
		Failed    map[string]string `json:"failed"`
	}

	ResolveDuplicateRequest struct {
		Action string `json:"action" validate:"required,oneof=ignore keep-both delete"`
	}

	DocumentResponse struct {
		ID                   string                `json:"id"`
		FileName             string                `json:"file_name"`
		FileURL              string                `json:"file_url,omitempty"`
		FileHash             *string               `json:"file_hash,omitempty"`
		Status               string                `json:"status"`
		ErrorMessage         string                `json:"error_message,omitempty"`
		DuplicateOfID        *string               `json:"duplicate_of_id,omitempty"`
		DuplicateIgnored     bool                  `json:"duplicate_ignored"`
		Vendor               string                `json:"vendor,omitempty"`
		TotalAmount          float64               `json:"total_amount"`
		VatAmount            float64               `json:"vat_amount"`
		InvoiceNumber        string                `json:"invoice_number,omitempty"`
		TaxCategory          string                `json:"tax_category,omitempty"`
		InvoiceType          string                `json:"invoice_type,omitempty"`
		DocumentDate         *time.Time            `json:"document_date,omitempty"`
		Year                 int                   `json:"year,omitempty"`
		Quarter              int                   `json:"quarter,omitempty"`
		LinkedTransactionIDs []string              `json:"linked_transaction_ids"`
		StorageLocationID    *string               `json:"storage_location_id,omitempty"`
		Ocr                  *entities.OcrMetadata `json:"ocr,omitempty"`
		CreatedAt            time.Time             `json:"created_at"`
	}

	QuarterVat struct {
		Year     int     `json:"year"`
		Quarter  int     `json:"quarter"`
		VatOwed  float64 `json:"vat_owed"`
		VatPaid  float64 `json:"vat_paid"`
		Estimate float64 `json:"estimate"`
	}

	DocumentDashboardResponse struct {
		TotalDocuments      int64        `json:"total_documents"`
		OkDocuments         int64        `json:"ok_documents"`
		AnalyzingDocuments  int64        `json:"analyzing_documents"`
		PotentialDuplicates int64        `json:"potential_duplicates"`
		ErrorDocuments      int64        `json:"error_documents"`
		MissingReceipts     int64        `json:"missing_receipts"`
		OpenTasks           int64        `json:"open_tasks"`
		QuarterVat          []QuarterVat `json:"quarter_vat"`
	}
)
