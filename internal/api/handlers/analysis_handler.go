package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/analysis"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AnalysisHandler interface {
		GetRules(c *fiber.Ctx) error
		CreateRule(c *fiber.Ctx) error
		UpdateRule(c *fiber.Ctx) error
		DeleteRule(c *fiber.Ctx) error
	}

	analysisHandler struct {
		analysisService analysis.AnalysisService
		validator       *validator.Validate
	}
)

func NewAnalysisHandler(analysisService analysis.AnalysisService, validator *validator.Validate) AnalysisHandler {
	return &analysisHandler{
		analysisService: analysisService,
		validator:       validator,
	}
}

func (h *analysisHandler) GetRules(c *fiber.Ctx) error {
	rules, err := h.analysisService.GetRules(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRules, err)
	}

	return presenters.SuccessResponse(c, rules, fiber.StatusOK, domain.MessageSuccessGetRules)
}

func (h *analysisHandler) CreateRule(c *fiber.Ctx) error {
	req := new(domain.CreateRuleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRule, err)
	}

	res, err := h.analysisService.CreateRule(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRule, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRule)
}

func (h *analysisHandler) UpdateRule(c *fiber.Ctx) error {
	ruleID := c.Params("id")
	req := new(domain.UpdateRuleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRule, err)
	}

	if err := h.analysisService.UpdateRule(c.Context(), ruleID, *req); err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateRule, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRule, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateRule)
}

func (h *analysisHandler) DeleteRule(c *fiber.Ctx) error {
	ruleID := c.Params("id")

	if err := h.analysisService.DeleteRule(c.Context(), ruleID); err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRule, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRule, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRule)
}
