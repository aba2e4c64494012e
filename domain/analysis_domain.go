package domain

import (
	"errors"
)

var (
	MessageSuccessGetRules    = "analysis rules retrieved successfully"
	MessageSuccessCreateRule  = "analysis rule created successfully"
	MessageSuccessUpdateRule  = "analysis rule updated successfully"
	MessageSuccessDeleteRule  = "analysis rule deleted successfully"
	MessageFailedGetRules     = "failed to retrieve analysis rules"
	MessageFailedCreateRule   = "failed to create analysis rule"
	MessageFailedUpdateRule   = "failed to update analysis rule"
	MessageFailedDeleteRule   = "failed to delete analysis rule"
	MessageFailedVisionCall   = "failed to analyze document"
	MessageFailedParseVision  = "failed to parse vision response"
	MessageVisionNotConfigure = "vision API not configured"

	ErrRuleNotFound           = errors.New("analysis rule not found")
	ErrVisionNotConfigured    = errors.New("vision API not configured")
	ErrVisionProcessingFailed = errors.New("vision processing failed")
)

type (
	// ExtractionResult is the raw output of the vision collaborator. Confidence
	// and warning data may be absent; the normalizer fills the gaps.
	ExtractionResult struct {
		IsInvoice           bool     `json:"isInvoice"`
		IsOrderConfirmation bool     `json:"isOrderConfirmation"`
		IsEmailBody         bool     `json:"isEmailBody"`
		DocumentDate        string   `json:"documentDate"` // YYYY-MM-DD
		TextContent         string   `json:"textContent"`
		Vendor              string   `json:"vendor"`
		TotalAmount         float64  `json:"totalAmount"`
		VatAmount           float64  `json:"vatAmount"`
		InvoiceNumber       string   `json:"invoiceNumber"`
		InvoiceType         string   `json:"invoiceType"`
		TaxCategory         string   `json:"taxCategory"`
		Confidence          *float64 `json:"confidenceScore,omitempty"`

		FieldConfidences []RawFieldConfidence `json:"fieldConfidences,omitempty"`
		Warnings         []string             `json:"warnings,omitempty"`
	}

	RawFieldConfidence struct {
		Field string  `json:"field"`
		Score float64 `json:"score"`
	}

	CreateRuleRequest struct {
		ConditionType  string `json:"condition_type" validate:"required,oneof=vendor textContent"`
		ConditionValue string `json:"condition_value" validate:"required"`
		InvoiceType    string `json:"invoice_type" validate:"omitempty,oneof=INCOMING OUTGOING"`
		ResultCategory string `json:"result_category" validate:"omitempty"`
		Position       int    `json:"position"`
	}

	UpdateRuleRequest struct {
		ConditionType  string `json:"condition_type" validate:"omitempty,oneof=vendor textContent"`
		ConditionValue string `json:"condition_value" validate:"omitempty"`
		InvoiceType    string `json:"invoice_type" validate:"omitempty,oneof=INCOMING OUTGOING"`
		ResultCategory string `json:"result_category" validate:"omitempty"`
		Position       *int   `json:"position"`
	}

	RuleResponse struct {
		ID             string `json:"id"`
		ConditionType  string `json:"condition_type"`
		ConditionValue string `json:"condition_value"`
		InvoiceType    string `json:"invoice_type"`
		ResultCategory string `json:"result_category"`
		Position       int    `json:"position"`
	}
)
