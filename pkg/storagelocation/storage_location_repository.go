package storagelocation

import (
	"Taxflow-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	StorageLocationRepository interface {
		CreateLocation(ctx context.Context, location *entities.StorageLocation) error
		GetLocationByID(ctx context.Context, id string) (*entities.StorageLocation, error)
		UpdateLocation(ctx context.Context, location *entities.StorageLocation) error
		DeleteLocation(ctx context.Context, id string) error
		GetLocations(ctx context.Context) ([]*entities.StorageLocation, error)
		ClearDefault(ctx context.Context) error
		CountDocumentsReferring(ctx context.Context, id string) (int64, error)
	}

	storageLocationRepository struct {
		db *gorm.DB
	}
)

func NewStorageLocationRepository(db *gorm.DB) StorageLocationRepository {
	return &storageLocationRepository{db: db}
}

func (r *storageLocationRepository) CreateLocation(ctx context.Context, location *entities.StorageLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *storageLocationRepository) GetLocationByID(ctx context.Context, id string) (*entities.StorageLocation, error) {
	var location entities.StorageLocation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *storageLocationRepository) UpdateLocation(ctx context.Context, location *entities.StorageLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *storageLocationRepository) DeleteLocation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.StorageLocation{}).Error
}

func (r *storageLocationRepository) GetLocations(ctx context.Context) ([]*entities.StorageLocation, error) {
	var locations []*entities.StorageLocation
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *storageLocationRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&entities.StorageLocation{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *storageLocationRepository) CountDocumentsReferring(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Document{}).
		Where("storage_location_id = ?", id).
		Count(&count).Error
	return count, err
}
