package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/lexoffice"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LexofficeHandler interface {
		SendDocuments(c *fiber.Ctx) error
		GetSendProgress(c *fiber.Ctx) error
	}

	lexofficeHandler struct {
		senderService lexoffice.SenderService
		validator     *validator.Validate
	}
)

func NewLexofficeHandler(senderService lexoffice.SenderService, validator *validator.Validate) LexofficeHandler {
	return &lexofficeHandler{
		senderService: senderService,
		validator:     validator,
	}
}

func (h *lexofficeHandler) SendDocuments(c *fiber.Ctx) error {
	req := new(domain.SendDocumentsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendDocuments, err)
	}

	res, err := h.senderService.SendDocuments(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendDocuments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendDocuments)
}

func (h *lexofficeHandler) GetSendProgress(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.senderService.Progress(), fiber.StatusOK, domain.MessageSuccessSendDocuments)
}
