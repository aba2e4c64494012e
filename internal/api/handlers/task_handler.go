package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/task"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TaskHandler interface {
		GetTasks(c *fiber.Ctx) error
		UpdateTask(c *fiber.Ctx) error
		RegenerateTasks(c *fiber.Ctx) error
	}

	taskHandler struct {
		taskService task.TaskService
		validator   *validator.Validate
	}
)

func NewTaskHandler(taskService task.TaskService, validator *validator.Validate) TaskHandler {
	return &taskHandler{
		taskService: taskService,
		validator:   validator,
	}
}

func (h *taskHandler) GetTasks(c *fiber.Ctx) error {
	status := c.Query("status", "all")

	tasks, err := h.taskService.GetTasks(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTasks, err)
	}

	return presenters.SuccessResponse(c, tasks, fiber.StatusOK, domain.MessageSuccessGetTasks)
}

func (h *taskHandler) UpdateTask(c *fiber.Ctx) error {
	taskID := c.Params("id")
	req := new(domain.UpdateTaskRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTask, err)
	}

	if err := h.taskService.UpdateTask(c.Context(), taskID, *req); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateTask, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTask, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateTask)
}

func (h *taskHandler) RegenerateTasks(c *fiber.Ctx) error {
	tasks, err := h.taskService.RegenerateTasks(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegenerate, err)
	}

	return presenters.SuccessResponse(c, tasks, fiber.StatusOK, domain.MessageSuccessRegenerated)
}
