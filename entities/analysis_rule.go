package entities

import (
	"github.com/google/uuid"
)

const (
	RuleConditionVendor      = "vendor"
	RuleConditionTextContent = "textContent"
)

// AnalysisRule overrides the vision model's classification. Rules are applied
// in Position order; the first match wins. ConditionValue holds comma-separated
// OR keywords.
type AnalysisRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ConditionType  string    `json:"condition_type"` // "vendor", "textContent"
	ConditionValue string    `json:"condition_value"`
	InvoiceType    string    `json:"invoice_type"`
	ResultCategory string    `json:"result_category"`
	Position       int       `json:"position"`

	Timestamp
}
