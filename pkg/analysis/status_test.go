package analysis

import (
	"testing"
	"time"

	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func otherDoc(invoiceNumber string, total float64, date *time.Time) *entities.Document {
	return &entities.Document{
		ID:            uuid.New(),
		InvoiceNumber: invoiceNumber,
		TotalAmount:   total,
		DocumentDate:  date,
	}
}

func TestDeriveStatusDuplicateByInvoiceNumber(t *testing.T) {
	result := domain.ExtractionResult{IsInvoice: true, InvoiceNumber: "INV-100"}
	others := []*entities.Document{otherDoc("inv-100", 0, nil)}

	assert.Equal(t, entities.DocumentStatusPotentialDuplicate, DeriveStatus(result, others))
}

func TestDeriveStatusShortInvoiceNumberNeverMatches(t *testing.T) {
	result := domain.ExtractionResult{IsInvoice: true, InvoiceNumber: "42"}
	others := []*entities.Document{otherDoc("42", 0, nil)}

	assert.Equal(t, entities.DocumentStatusOK, DeriveStatus(result, others))
}

func TestDeriveStatusDuplicateByAmountAndDate(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	result := domain.ExtractionResult{IsInvoice: true, TotalAmount: 47.60, DocumentDate: "2025-03-01"}
	others := []*entities.Document{otherDoc("", 47.60, &date)}

	assert.Equal(t, entities.DocumentStatusPotentialDuplicate, DeriveStatus(result, others))
}

func TestDeriveStatusAmountMatchRequiresSameDate(t *testing.T) {
	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	result := domain.ExtractionResult{IsInvoice: true, TotalAmount: 47.60, DocumentDate: "2025-03-01"}
	others := []*entities.Document{otherDoc("", 47.60, &date)}

	assert.Equal(t, entities.DocumentStatusOK, DeriveStatus(result, others))
}

func TestDeriveStatusOrderConfirmation(t *testing.T) {
	result := domain.ExtractionResult{IsOrderConfirmation: true}
	assert.Equal(t, entities.DocumentStatusMissingInvoice, DeriveStatus(result, nil))
}

func TestDeriveStatusEmailBody(t *testing.T) {
	result := domain.ExtractionResult{IsEmailBody: true}
	assert.Equal(t, entities.DocumentStatusScreenshot, DeriveStatus(result, nil))
}

func TestDeriveStatusInvoiceOverridesOrderConfirmation(t *testing.T) {
	result := domain.ExtractionResult{IsInvoice: true, IsOrderConfirmation: true, IsEmailBody: true}
	assert.Equal(t, entities.DocumentStatusOK, DeriveStatus(result, nil))
}
