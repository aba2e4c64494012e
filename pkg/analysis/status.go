package analysis

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"math"
	"strings"
	"time"
)

// DeriveStatus classifies a normalized extraction result against the other
// existing documents. This heuristic duplicate check is independent of the
// upload-time hash check and is re-run on every re-analysis.
func DeriveStatus(result domain.ExtractionResult, others []*entities.Document) string {
	if matchesExistingDocument(result, others) {
		return entities.DocumentStatusPotentialDuplicate
	}
	if result.IsOrderConfirmation && !result.IsInvoice {
		return entities.DocumentStatusMissingInvoice
	}
	if result.IsEmailBody && !result.IsInvoice {
		return entities.DocumentStatusScreenshot
	}
	return entities.DocumentStatusOK
}

func matchesExistingDocument(result domain.ExtractionResult, others []*entities.Document) bool {
	invoiceNumber := strings.TrimSpace(result.InvoiceNumber)
	resultDate, hasDate := parseDocumentDate(result.DocumentDate)
	resultTotal := roundTo2(result.TotalAmount)

	for _, other := range others {
		// Trivially short invoice numbers ("1", "42") match too eagerly.
		if len(invoiceNumber) > 2 && strings.EqualFold(invoiceNumber, strings.TrimSpace(other.InvoiceNumber)) {
			return true
		}
		if hasDate && other.DocumentDate != nil &&
			sameCalendarDay(resultDate, *other.DocumentDate) &&
			math.Abs(roundTo2(other.TotalAmount)-resultTotal) == 0 {
			return true
		}
	}
	return false
}

func parseDocumentDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
