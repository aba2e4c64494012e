package analysis

import (
	"testing"

	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"

	"github.com/stretchr/testify/assert"
)

func TestApplyRulesFirstMatchWins(t *testing.T) {
	rules := []*entities.AnalysisRule{
		{ConditionType: entities.RuleConditionVendor, ConditionValue: "hetzner", ResultCategory: "hosting", InvoiceType: entities.InvoiceTypeIncoming},
		{ConditionType: entities.RuleConditionVendor, ConditionValue: "hetzner online", ResultCategory: "it-services"},
	}
	result := domain.ExtractionResult{Vendor: "Hetzner Online GmbH", TaxCategory: GenericTaxCategory}

	out := ApplyRules(result, rules)

	assert.Equal(t, "hosting", out.TaxCategory)
	assert.Equal(t, entities.InvoiceTypeIncoming, out.InvoiceType)
}

func TestApplyRulesCommaSeparatedOrKeywords(t *testing.T) {
	rules := []*entities.AnalysisRule{
		{ConditionType: entities.RuleConditionTextContent, ConditionValue: "bahn, flug, taxi", ResultCategory: "travel"},
	}
	result := domain.ExtractionResult{TextContent: "Rechnung Taxi Berlin 23,50 EUR"}

	out := ApplyRules(result, rules)

	assert.Equal(t, "travel", out.TaxCategory)
}

func TestApplyRulesNoMatchLeavesResultUntouched(t *testing.T) {
	rules := []*entities.AnalysisRule{
		{ConditionType: entities.RuleConditionVendor, ConditionValue: "aws", ResultCategory: "cloud"},
	}
	result := domain.ExtractionResult{Vendor: "Deutsche Bahn", TaxCategory: "travel"}

	out := ApplyRules(result, rules)

	assert.Equal(t, "travel", out.TaxCategory)
}

func TestApplyRulesEmptyOverridesAreSkipped(t *testing.T) {
	rules := []*entities.AnalysisRule{
		{ConditionType: entities.RuleConditionVendor, ConditionValue: "bahn", ResultCategory: "travel"},
	}
	result := domain.ExtractionResult{Vendor: "Deutsche Bahn", InvoiceType: entities.InvoiceTypeIncoming}

	out := ApplyRules(result, rules)

	assert.Equal(t, entities.InvoiceTypeIncoming, out.InvoiceType, "rule without invoice type keeps the model's")
}

func TestParseExtractionTextHandlesMarkdownFence(t *testing.T) {
	text := "```json\n{\"isInvoice\": true, \"vendor\": \"Hetzner\", \"totalAmount\": 47.6, \"invoiceType\": \"incoming\"}\n```"

	result, err := parseExtractionText(text)

	assert.NoError(t, err)
	assert.True(t, result.IsInvoice)
	assert.Equal(t, "Hetzner", result.Vendor)
	assert.Equal(t, entities.InvoiceTypeIncoming, result.InvoiceType)
	assert.Equal(t, GenericTaxCategory, result.TaxCategory)
}

func TestParseExtractionTextRejectsGarbage(t *testing.T) {
	_, err := parseExtractionText("the model refused to answer")
	assert.Error(t, err)
}
