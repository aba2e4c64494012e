package storagelocation

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	StorageLocationService interface {
		GetLocations(ctx context.Context) ([]domain.LocationResponse, error)
		CreateLocation(ctx context.Context, req domain.CreateLocationRequest) (domain.LocationResponse, error)
		UpdateLocation(ctx context.Context, id string, req domain.UpdateLocationRequest) error
		DeleteLocation(ctx context.Context, id string) error
		SetDefaultLocation(ctx context.Context, id string) error
	}

	storageLocationService struct {
		locationRepository StorageLocationRepository
	}
)

func NewStorageLocationService(locationRepository StorageLocationRepository) StorageLocationService {
	return &storageLocationService{locationRepository: locationRepository}
}

func (s *storageLocationService) GetLocations(ctx context.Context) ([]domain.LocationResponse, error) {
	locations, err := s.locationRepository.GetLocations(ctx)
	if err != nil {
		return nil, err
	}

	var response []domain.LocationResponse
	for _, location := range locations {
		response = append(response, toLocationResponse(location))
	}
	return response, nil
}

func (s *storageLocationService) CreateLocation(ctx context.Context, req domain.CreateLocationRequest) (domain.LocationResponse, error) {
	location := &entities.StorageLocation{
		ID:    uuid.New(),
		Label: req.Label,
		Type:  req.Type,
	}
	if err := s.locationRepository.CreateLocation(ctx, location); err != nil {
		return domain.LocationResponse{}, err
	}
	return toLocationResponse(location), nil
}

func (s *storageLocationService) UpdateLocation(ctx context.Context, id string, req domain.UpdateLocationRequest) error {
	location, err := s.getLocation(ctx, id)
	if err != nil {
		return err
	}

	if req.Label != "" {
		location.Label = req.Label
	}
	if req.Type != "" {
		location.Type = req.Type
	}

	return s.locationRepository.UpdateLocation(ctx, location)
}

func (s *storageLocationService) DeleteLocation(ctx context.Context, id string) error {
	location, err := s.getLocation(ctx, id)
	if err != nil {
		return err
	}
	if location.IsDefault {
		return domain.ErrCannotDeleteDefault
	}

	referred, err := s.locationRepository.CountDocumentsReferring(ctx, id)
	if err != nil {
		return err
	}
	if referred > 0 {
		return domain.ErrLocationStillReferred
	}

	return s.locationRepository.DeleteLocation(ctx, id)
}

// SetDefaultLocation keeps the single-default invariant: the previous default
// is cleared in the same call.
func (s *storageLocationService) SetDefaultLocation(ctx context.Context, id string) error {
	location, err := s.getLocation(ctx, id)
	if err != nil {
		return err
	}
	if location.IsDefault {
		return nil
	}

	if err := s.locationRepository.ClearDefault(ctx); err != nil {
		return err
	}
	location.IsDefault = true
	return s.locationRepository.UpdateLocation(ctx, location)
}

func (s *storageLocationService) getLocation(ctx context.Context, id string) (*entities.StorageLocation, error) {
	location, err := s.locationRepository.GetLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return location, nil
}

func toLocationResponse(location *entities.StorageLocation) domain.LocationResponse {
	return domain.LocationResponse{
		ID:        location.ID.String(),
		Label:     location.Label,
		Type:      location.Type,
		IsDefault: location.IsDefault,
	}
}
