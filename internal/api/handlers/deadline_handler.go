package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/deadline"

	"github.com/gofiber/fiber/v2"
)

type (
	DeadlineHandler interface {
		GetDeadlines(c *fiber.Ctx) error
		SendReminders(c *fiber.Ctx) error
	}

	deadlineHandler struct {
		deadlineService deadline.DeadlineService
	}
)

func NewDeadlineHandler(deadlineService deadline.DeadlineService) DeadlineHandler {
	return &deadlineHandler{deadlineService: deadlineService}
}

func (h *deadlineHandler) GetDeadlines(c *fiber.Ctx) error {
	deadlines, err := h.deadlineService.GetDeadlines(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDeadlines, err)
	}

	return presenters.SuccessResponse(c, deadlines, fiber.StatusOK, domain.MessageSuccessGetDeadlines)
}

func (h *deadlineHandler) SendReminders(c *fiber.Ctx) error {
	count, err := h.deadlineService.SendReminders(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDeadlines, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"reminders_sent": count}, fiber.StatusOK, domain.MessageSuccessGetDeadlines)
}
