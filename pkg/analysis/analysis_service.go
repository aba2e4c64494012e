package analysis

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

const visionPrompt = "Analyze this document image and respond ONLY with a valid JSON object containing exactly these fields: " +
	"'isInvoice' (boolean), 'isOrderConfirmation' (boolean), 'isEmailBody' (boolean), " +
	"'documentDate' (string in YYYY-MM-DD format), 'textContent' (string), 'vendor' (string), " +
	"'totalAmount' (number), 'vatAmount' (number), 'invoiceNumber' (string), " +
	"'invoiceType' (string, \"INCOMING\" or \"OUTGOING\"), 'taxCategory' (string) and optionally " +
	"'confidenceScore' (number between 0 and 100). Do not include any explanations, markdown formatting, or extra text."

type (
	AnalysisService interface {
		AnalyzeDocument(ctx context.Context, fileData []byte, mimeType string) (domain.ExtractionResult, error)

		GetRules(ctx context.Context) ([]domain.RuleResponse, error)
		CreateRule(ctx context.Context, req domain.CreateRuleRequest) (domain.RuleResponse, error)
		UpdateRule(ctx context.Context, id string, req domain.UpdateRuleRequest) error
		DeleteRule(ctx context.Context, id string) error
	}

	analysisService struct {
		ruleRepository RuleRepository
	}
)

func NewAnalysisService(ruleRepository RuleRepository) AnalysisService {
	return &analysisService{ruleRepository: ruleRepository}
}

// AnalyzeDocument sends the document image to the vision API and returns the
// extraction result with the configured override rules already applied.
func (s *analysisService) AnalyzeDocument(ctx context.Context, fileData []byte, mimeType string) (domain.ExtractionResult, error) {
	apiKey := utils.GetConfig("VISION_API_KEY")
	if apiKey == "" {
		return domain.ExtractionResult{}, domain.ErrVisionNotConfigured
	}
	model := utils.GetConfig("VISION_MODEL")
	if model == "" {
		return domain.ExtractionResult{}, domain.ErrVisionNotConfigured
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	visionURL := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model, apiKey,
	)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": visionPrompt},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(fileData),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, visionURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.ExtractionResult{}, fmt.Errorf("vision API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var visionResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return domain.ExtractionResult{}, err
	}

	if len(visionResp.Candidates) == 0 || len(visionResp.Candidates[0].Content.Parts) == 0 {
		return domain.ExtractionResult{}, domain.ErrVisionProcessingFailed
	}

	result, err := parseExtractionText(visionResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	rules, err := s.ruleRepository.GetRules(ctx)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	return ApplyRules(result, rules), nil
}

// parseExtractionText digs the JSON object out of a possibly markdown-fenced
// model response and applies sanity fixes to out-of-range values.
func parseExtractionText(responseText string) (domain.ExtractionResult, error) {
	jsonPattern := regexp.MustCompile(`(?s)\{.*\}`)
	if matches := jsonPattern.FindString(responseText); matches != "" {
		responseText = matches
	}

	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to parse vision response: %v - Raw response: %s", err, responseText)
	}

	result.InvoiceType = strings.ToUpper(strings.TrimSpace(result.InvoiceType))
	if result.InvoiceType != entities.InvoiceTypeIncoming && result.InvoiceType != entities.InvoiceTypeOutgoing {
		result.InvoiceType = entities.InvoiceTypeIncoming
	}
	if result.TaxCategory == "" {
		result.TaxCategory = GenericTaxCategory
	}
	if result.Confidence != nil && (*result.Confidence < 0 || *result.Confidence > 100) {
		result.Confidence = nil
	}

	return result, nil
}

func (s *analysisService) GetRules(ctx context.Context) ([]domain.RuleResponse, error) {
	rules, err := s.ruleRepository.GetRules(ctx)
	if err != nil {
		return nil, err
	}

	var response []domain.RuleResponse
	for _, rule := range rules {
		response = append(response, toRuleResponse(rule))
	}
	return response, nil
}

func (s *analysisService) CreateRule(ctx context.Context, req domain.CreateRuleRequest) (domain.RuleResponse, error) {
	rule := &entities.AnalysisRule{
		ConditionType:  req.ConditionType,
		ConditionValue: req.ConditionValue,
		InvoiceType:    req.InvoiceType,
		ResultCategory: req.ResultCategory,
		Position:       req.Position,
	}
	if err := s.ruleRepository.CreateRule(ctx, rule); err != nil {
		return domain.RuleResponse{}, err
	}
	return toRuleResponse(rule), nil
}

func (s *analysisService) UpdateRule(ctx context.Context, id string, req domain.UpdateRuleRequest) error {
	rule, err := s.ruleRepository.GetRuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRuleNotFound
		}
		return err
	}

	if req.ConditionType != "" {
		rule.ConditionType = req.ConditionType
	}
	if req.ConditionValue != "" {
		rule.ConditionValue = req.ConditionValue
	}
	if req.InvoiceType != "" {
		rule.InvoiceType = req.InvoiceType
	}
	if req.ResultCategory != "" {
		rule.ResultCategory = req.ResultCategory
	}
	if req.Position != nil {
		rule.Position = *req.Position
	}

	return s.ruleRepository.UpdateRule(ctx, rule)
}

func (s *analysisService) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.ruleRepository.GetRuleByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRuleNotFound
		}
		return err
	}
	return s.ruleRepository.DeleteRule(ctx, id)
}

func toRuleResponse(rule *entities.AnalysisRule) domain.RuleResponse {
	return domain.RuleResponse{
		ID:             rule.ID.String(),
		ConditionType:  rule.ConditionType,
		ConditionValue: rule.ConditionValue,
		InvoiceType:    rule.InvoiceType,
		ResultCategory: rule.ResultCategory,
		Position:       rule.Position,
	}
}
