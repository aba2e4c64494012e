package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DocumentStatusOK                 = "OK"
	DocumentStatusMissingInvoice     = "MISSING_INVOICE"
	DocumentStatusScreenshot         = "SCREENSHOT"
	DocumentStatusAnalyzing          = "ANALYZING"
	DocumentStatusPotentialDuplicate = "POTENTIAL_DUPLICATE"
	DocumentStatusArchived           = "ARCHIVED"
	DocumentStatusError              = "ERROR"
)

const (
	InvoiceTypeIncoming = "INCOMING"
	InvoiceTypeOutgoing = "OUTGOING"
)

// FieldConfidence is one per-field entry of the OCR confidence report.
type FieldConfidence struct {
	Field string `json:"field"`
	Score int    `json:"score"`
	Label string `json:"label"`
}

// OcrMetadata is only present once analysis has completed.
type OcrMetadata struct {
	Confidence float64           `json:"confidence"`
	Fields     []FieldConfidence `json:"fields"`
	Warnings   []string          `json:"warnings"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

type Document struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	FileName string    `json:"file_name"`
	FileURL  string    `json:"file_url,omitempty"`
	FileHash *string   `gorm:"index" json:"file_hash,omitempty"`

	Status       string `json:"status"` // "OK", "MISSING_INVOICE", "SCREENSHOT", "ANALYZING", "POTENTIAL_DUPLICATE", "ARCHIVED", "ERROR"
	ErrorMessage string `json:"error_message,omitempty"`

	DuplicateOfID    *string `json:"duplicate_of_id,omitempty"`
	DuplicateIgnored bool    `json:"duplicate_ignored"`

	Vendor        string     `json:"vendor,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	VatAmount     float64    `json:"vat_amount"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	TaxCategory   string     `json:"tax_category,omitempty"`
	InvoiceType   string     `json:"invoice_type,omitempty"` // "INCOMING", "OUTGOING"
	DocumentDate  *time.Time `json:"document_date,omitempty"`
	Year          int        `json:"year,omitempty"`
	Quarter       int        `json:"quarter,omitempty"`

	LinkedTransactionIDs []string       `gorm:"serializer:json" json:"linked_transaction_ids"`
	StorageLocationID    *string        `json:"storage_location_id,omitempty"`
	Ocr                  *OcrMetadata   `gorm:"serializer:json" json:"ocr,omitempty"`
	RawAnalysis          datatypes.JSON `gorm:"type:jsonb" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
