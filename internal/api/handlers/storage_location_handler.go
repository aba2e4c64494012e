package handlers

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/api/presenters"
	"Taxflow-Backend/pkg/storagelocation"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StorageLocationHandler interface {
		GetLocations(c *fiber.Ctx) error
		CreateLocation(c *fiber.Ctx) error
		UpdateLocation(c *fiber.Ctx) error
		DeleteLocation(c *fiber.Ctx) error
		SetDefaultLocation(c *fiber.Ctx) error
	}

	storageLocationHandler struct {
		locationService storagelocation.StorageLocationService
		validator       *validator.Validate
	}
)

func NewStorageLocationHandler(locationService storagelocation.StorageLocationService, validator *validator.Validate) StorageLocationHandler {
	return &storageLocationHandler{
		locationService: locationService,
		validator:       validator,
	}
}

func (h *storageLocationHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.locationService.GetLocations(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLocations, err)
	}

	return presenters.SuccessResponse(c, locations, fiber.StatusOK, domain.MessageSuccessGetLocations)
}

func (h *storageLocationHandler) CreateLocation(c *fiber.Ctx) error {
	req := new(domain.CreateLocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateLocation, err)
	}

	res, err := h.locationService.CreateLocation(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateLocation)
}

func (h *storageLocationHandler) UpdateLocation(c *fiber.Ctx) error {
	locationID := c.Params("id")
	req := new(domain.UpdateLocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLocation, err)
	}

	if err := h.locationService.UpdateLocation(c.Context(), locationID, *req); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateLocation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLocation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateLocation)
}

func (h *storageLocationHandler) DeleteLocation(c *fiber.Ctx) error {
	locationID := c.Params("id")

	if err := h.locationService.DeleteLocation(c.Context(), locationID); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteLocation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteLocation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteLocation)
}

func (h *storageLocationHandler) SetDefaultLocation(c *fiber.Ctx) error {
	locationID := c.Params("id")

	if err := h.locationService.SetDefaultLocation(c.Context(), locationID); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSetDefault, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetDefault, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetDefault)
}
