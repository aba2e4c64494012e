package analysis

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"math"
	"strings"
	"time"
)

// GenericTaxCategory is the fallback category the vision model assigns when it
// cannot classify a document; baseline confidence for it is lower.
const GenericTaxCategory = "other"

const lowAverageThreshold = 75

var (
	WarningOrderConfirmation = "Document appears to be an order confirmation, not an invoice"
	WarningEmailBody         = "Document appears to be an email body, not an invoice"
	WarningNoInvoiceNumber   = "No invoice number detected"
	WarningNonPositiveTotal  = "Total amount is not positive"
	WarningLowConfidence     = "Average confidence below 75"
)

// Normalize fills the gaps a vision result may leave: per-field confidences
// are synthesized from fixed baselines when absent, every score is clamped to
// [10,100] and labeled, the average is computed unless supplied, and the
// standard warnings are appended when their condition holds. Caller-supplied
// warnings are never replaced.
func Normalize(raw domain.ExtractionResult, analyzedAt time.Time) entities.OcrMetadata {
	fields := raw.FieldConfidences
	if len(fields) == 0 {
		fields = baselineConfidences(raw)
	}

	normalized := make([]entities.FieldConfidence, 0, len(fields))
	for _, f := range fields {
		score := clampScore(f.Score)
		normalized = append(normalized, entities.FieldConfidence{
			Field: f.Field,
			Score: score,
			Label: confidenceLabel(score),
		})
	}

	average := averageScore(normalized)
	if raw.Confidence != nil {
		average = roundTo2(float64(clampScore(*raw.Confidence)))
	}

	warnings := append([]string(nil), raw.Warnings...)
	appendWarning := func(condition bool, warning string) {
		if !condition {
			return
		}
		for _, w := range warnings {
			if w == warning {
				return
			}
		}
		warnings = append(warnings, warning)
	}
	appendWarning(raw.IsOrderConfirmation && !raw.IsInvoice, WarningOrderConfirmation)
	appendWarning(raw.IsEmailBody && !raw.IsInvoice, WarningEmailBody)
	appendWarning(strings.TrimSpace(raw.InvoiceNumber) == "", WarningNoInvoiceNumber)
	appendWarning(raw.TotalAmount <= 0, WarningNonPositiveTotal)
	appendWarning(average < lowAverageThreshold, WarningLowConfidence)

	return entities.OcrMetadata{
		Confidence: average,
		Fields:     normalized,
		Warnings:   warnings,
		AnalyzedAt: analyzedAt,
	}
}

// baselineConfidences stands in for a real per-field OCR confidence model:
// a fixed score per field, lowered when the field came back empty.
func baselineConfidences(raw domain.ExtractionResult) []domain.RawFieldConfidence {
	pick := func(present bool, ifPresent, ifAbsent float64) float64 {
		if present {
			return ifPresent
		}
		return ifAbsent
	}
	category := strings.ToLower(strings.TrimSpace(raw.TaxCategory))
	return []domain.RawFieldConfidence{
		{Field: "vendor", Score: pick(strings.TrimSpace(raw.Vendor) != "", 92, 65)},
		{Field: "invoiceNumber", Score: pick(strings.TrimSpace(raw.InvoiceNumber) != "", 88, 60)},
		{Field: "documentDate", Score: pick(strings.TrimSpace(raw.DocumentDate) != "", 87, 60)},
		{Field: "totalAmount", Score: pick(raw.TotalAmount > 0, 90, 58)},
		{Field: "vatAmount", Score: pick(raw.VatAmount > 0, 82, 55)},
		{Field: "invoiceType", Score: 86},
		{Field: "taxCategory", Score: pick(category != "" && category != GenericTaxCategory, 78, 65)},
	}
}

// clampScore clamps to [10,100] and rounds to the nearest integer; NaN and
// infinities collapse to the lower bound.
func clampScore(score float64) int {
	if math.IsNaN(score) || math.IsInf(score, -1) {
		return 10
	}
	if math.IsInf(score, 1) || score > 100 {
		return 100
	}
	if score < 10 {
		return 10
	}
	return int(math.Round(score))
}

func confidenceLabel(score int) string {
	switch {
	case score >= 90:
		return "very high"
	case score >= 75:
		return "strong"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}

func averageScore(fields []entities.FieldConfidence) float64 {
	if len(fields) == 0 {
		return 0
	}
	sum := 0
	for _, f := range fields {
		sum += f.Score
	}
	return roundTo2(float64(sum) / float64(len(fields)))
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
