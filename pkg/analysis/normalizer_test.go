package analysis

import (
	"math"
	"testing"
	"time"

	"Taxflow-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyzedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fullResult() domain.ExtractionResult {
	return domain.ExtractionResult{
		IsInvoice:     true,
		DocumentDate:  "2025-03-01",
		Vendor:        "Hetzner Online GmbH",
		TotalAmount:   47.60,
		VatAmount:     7.60,
		InvoiceNumber: "R-2025-0042",
		InvoiceType:   "INCOMING",
		TaxCategory:   "hosting",
	}
}

func TestNormalizeSynthesizesBaselines(t *testing.T) {
	meta := Normalize(fullResult(), analyzedAt)

	require.Len(t, meta.Fields, 7)
	byField := map[string]int{}
	for _, f := range meta.Fields {
		byField[f.Field] = f.Score
	}
	assert.Equal(t, 92, byField["vendor"])
	assert.Equal(t, 88, byField["invoiceNumber"])
	assert.Equal(t, 87, byField["documentDate"])
	assert.Equal(t, 90, byField["totalAmount"])
	assert.Equal(t, 82, byField["vatAmount"])
	assert.Equal(t, 86, byField["invoiceType"])
	assert.Equal(t, 78, byField["taxCategory"])
	assert.Equal(t, analyzedAt, meta.AnalyzedAt)
}

func TestNormalizeBaselinesForAbsentFields(t *testing.T) {
	meta := Normalize(domain.ExtractionResult{TaxCategory: GenericTaxCategory}, analyzedAt)

	byField := map[string]int{}
	for _, f := range meta.Fields {
		byField[f.Field] = f.Score
	}
	assert.Equal(t, 65, byField["vendor"])
	assert.Equal(t, 60, byField["invoiceNumber"])
	assert.Equal(t, 60, byField["documentDate"])
	assert.Equal(t, 58, byField["totalAmount"])
	assert.Equal(t, 55, byField["vatAmount"])
	assert.Equal(t, 65, byField["taxCategory"], "the generic fallback category scores lower")
}

func TestNormalizeClampsSuppliedConfidences(t *testing.T) {
	raw := fullResult()
	raw.FieldConfidences = []domain.RawFieldConfidence{
		{Field: "vendor", Score: -30},
		{Field: "totalAmount", Score: 250},
		{Field: "vatAmount", Score: math.NaN()},
		{Field: "invoiceNumber", Score: 73.4},
	}

	meta := Normalize(raw, analyzedAt)

	require.Len(t, meta.Fields, 4)
	for _, f := range meta.Fields {
		assert.GreaterOrEqual(t, f.Score, 10, "field %s", f.Field)
		assert.LessOrEqual(t, f.Score, 100, "field %s", f.Field)
	}
	assert.Equal(t, 10, meta.Fields[0].Score)
	assert.Equal(t, 100, meta.Fields[1].Score)
	assert.Equal(t, 10, meta.Fields[2].Score)
	assert.Equal(t, 73, meta.Fields[3].Score)
}

func TestNormalizeConfidenceLabels(t *testing.T) {
	cases := []struct {
		score int
		label string
	}{
		{95, "very high"},
		{90, "very high"},
		{89, "strong"},
		{75, "strong"},
		{74, "medium"},
		{60, "medium"},
		{59, "low"},
		{10, "low"},
	}
	for _, c := range cases {
		assert.Equal(t, c.label, confidenceLabel(c.score), "score %d", c.score)
	}
}

func TestNormalizeAveragePrefersSuppliedScore(t *testing.T) {
	raw := fullResult()
	supplied := 81.0
	raw.Confidence = &supplied

	meta := Normalize(raw, analyzedAt)

	assert.Equal(t, 81.0, meta.Confidence)
}

func TestNormalizeAverageIsMeanRoundedTo2(t *testing.T) {
	raw := fullResult()
	raw.FieldConfidences = []domain.RawFieldConfidence{
		{Field: "vendor", Score: 80},
		{Field: "invoiceNumber", Score: 85},
		{Field: "totalAmount", Score: 91},
	}

	meta := Normalize(raw, analyzedAt)

	assert.Equal(t, 85.33, meta.Confidence)
}

func TestNormalizeWarnings(t *testing.T) {
	raw := domain.ExtractionResult{
		IsOrderConfirmation: true,
		IsEmailBody:         true,
		TotalAmount:         0,
	}

	meta := Normalize(raw, analyzedAt)

	assert.Contains(t, meta.Warnings, WarningOrderConfirmation)
	assert.Contains(t, meta.Warnings, WarningEmailBody)
	assert.Contains(t, meta.Warnings, WarningNoInvoiceNumber)
	assert.Contains(t, meta.Warnings, WarningNonPositiveTotal)
	assert.Contains(t, meta.Warnings, WarningLowConfidence)
}

func TestNormalizeWarningsNotDuplicated(t *testing.T) {
	raw := fullResult()
	raw.InvoiceNumber = ""
	raw.Warnings = []string{WarningNoInvoiceNumber, "custom upstream warning"}

	meta := Normalize(raw, analyzedAt)

	count := 0
	for _, w := range meta.Warnings {
		if w == WarningNoInvoiceNumber {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, meta.Warnings, "custom upstream warning", "caller warnings accumulate, never replaced")
}

func TestNormalizeCleanInvoiceHasNoWarnings(t *testing.T) {
	meta := Normalize(fullResult(), analyzedAt)

	assert.Empty(t, meta.Warnings)
	assert.GreaterOrEqual(t, meta.Confidence, 75.0)
}
