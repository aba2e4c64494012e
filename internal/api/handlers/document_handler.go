package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/document"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DocumentHandler interface {
		UploadDocument(c *fiber.Ctx) error
		GetDocuments(c *fiber.Ctx) error
		GetDocumentDetails(c *fiber.Ctx) error
		UpdateDocument(c *fiber.Ctx) error
		DeleteDocument(c *fiber.Ctx) error
		DeleteAllDocuments(c *fiber.Ctx) error
		BatchPatch(c *fiber.Ctx) error
		ResolveDuplicate(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
	}

	documentHandler struct {
		documentService document.DocumentService
		validator       *validator.Validate
	}
)

func NewDocumentHandler(documentService document.DocumentService, validator *validator.Validate) DocumentHandler {
	return &documentHandler{
		documentService: documentService,
		validator:       validator,
	}
}

func (h *documentHandler) UploadDocument(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadDocumentRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.File = file
	req.StorageLocationID = c.FormValue("storage_location_id")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDocument, err)
	}

	res, err := h.documentService.UploadDocument(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDocument, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadDocument)
}

func (h *documentHandler) GetDocuments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	docs, count, err := h.documentService.GetDocuments(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDocuments, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"documents": docs,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDocuments)
}

func (h *documentHandler) GetDocumentDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	docID := c.Params("id")

	doc, err := h.documentService.GetDocumentByID(c.Context(), docID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetDocuments, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDocuments, err)
	}

	return presenters.SuccessResponse(c, doc, fiber.StatusOK, domain.MessageSuccessGetDocuments)
}

func (h *documentHandler) UpdateDocument(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	docID := c.Params("id")
	req := new(domain.UpdateDocumentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDocument, err)
	}

	if err := h.documentService.UpdateDocument(c.Context(), docID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDocument, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateDocument)
}

func (h *documentHandler) DeleteDocument(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	docID := c.Params("id")

	if err := h.documentService.DeleteDocument(c.Context(), docID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteDocument, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDocument)
}

func (h *documentHandler) DeleteAllDocuments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.documentService.DeleteAllDocuments(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteDocument, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAllDocuments)
}

func (h *documentHandler) BatchPatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.BatchPatchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBatchPatch, err)
	}

	res, err := h.documentService.BatchPatch(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBatchPatch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessBatchPatch)
}

func (h *documentHandler) ResolveDuplicate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	docID := c.Params("id")
	req := new(domain.ResolveDuplicateRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveDuplicate, err)
	}

	if err := h.documentService.ResolveDuplicate(c.Context(), docID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveDuplicate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResolveDuplicate)
}

func (h *documentHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.documentService.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
