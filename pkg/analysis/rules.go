package analysis

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"strings"
)

// ApplyRules runs the ordered extraction rules over a result; the first
// matching rule overrides the model's own type/category classification.
// ConditionValue holds comma-separated OR keywords matched case-insensitively
// as substrings.
func ApplyRules(result domain.ExtractionResult, rules []*entities.AnalysisRule) domain.ExtractionResult {
	for _, rule := range rules {
		if !ruleMatches(result, rule) {
			continue
		}
		if rule.InvoiceType != "" {
			result.InvoiceType = rule.InvoiceType
		}
		if rule.ResultCategory != "" {
			result.TaxCategory = rule.ResultCategory
		}
		return result
	}
	return result
}

func ruleMatches(result domain.ExtractionResult, rule *entities.AnalysisRule) bool {
	var haystack string
	switch rule.ConditionType {
	case entities.RuleConditionVendor:
		haystack = result.Vendor
	case entities.RuleConditionTextContent:
		haystack = result.TextContent
	default:
		return false
	}
	haystack = strings.ToLower(haystack)

	for _, keyword := range strings.Split(rule.ConditionValue, ",") {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
