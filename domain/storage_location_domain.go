package domain

import (
	"errors"
)

var (
	MessageSuccessGetLocations   = "storage locations retrieved successfully"
	MessageSuccessCreateLocation = "storage location created successfully"
	MessageSuccessUpdateLocation = "storage location updated successfully"
	MessageSuccessDeleteLocation = "storage location deleted successfully"
	MessageSuccessSetDefault     = "default storage location set"

	MessageFailedGetLocations   = "failed to retrieve storage locations"
	MessageFailedCreateLocation = "failed to create storage location"
	MessageFailedUpdateLocation = "failed to update storage location"
	MessageFailedDeleteLocation = "failed to delete storage location"
	MessageFailedSetDefault     = "failed to set default storage location"

	ErrLocationNotFound      = errors.New("storage location not found")
	ErrCannotDeleteDefault   = errors.New("cannot delete the default storage location")
	ErrInvalidLocationType   = errors.New("invalid storage location type")
	ErrLocationStillReferred = errors.New("storage location is still referenced by documents")
)

type (
	CreateLocationRequest struct {
		Label string `json:"label" validate:"required"`
		Type  string `json:"type" validate:"required,oneof=DIGITAL PHYSICAL ARCHIVE LEXOFFICE"`
	}

	UpdateLocationRequest struct {
		Label string `json:"label" validate:"omitempty"`
		Type  string `json:"type" validate:"omitempty,oneof=DIGITAL PHYSICAL ARCHIVE LEXOFFICE"`
	}

	LocationResponse struct {
		ID        string `json:"id"`
		Label     string `json:"label"`
		Type      string `json:"type"`
		IsDefault bool   `json:"is_default"`
	}
)
