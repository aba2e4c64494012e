package document

import (
	"Taxflow-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	DocumentRepository interface {
		CreateDocument(ctx context.Context, doc *entities.Document) error
		GetDocumentByID(ctx context.Context, id string) (*entities.Document, error)
		UpdateDocument(ctx context.Context, doc *entities.Document) error
		DeleteDocument(ctx context.Context, id string) error
		DeleteAllDocuments(ctx context.Context, userID string) error
		GetDocuments(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Document, int64, error)
		FindActiveByHash(ctx context.Context, hash string) ([]*entities.Document, error)

		// Snapshot access for the link synchronizer.
		ListDocuments(ctx context.Context) ([]*entities.Document, error)
		UpsertDocuments(ctx context.Context, docs []*entities.Document) error
	}

	documentRepository struct {
		db *gorm.DB
	}
)

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateDocument(ctx context.Context, doc *entities.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetDocumentByID(ctx context.Context, id string) (*entities.Document, error) {
	var doc entities.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) UpdateDocument(ctx context.Context, doc *entities.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *documentRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Document{}).Error
}

func (r *documentRepository) DeleteAllDocuments(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Document{}).Error
}

func (r *documentRepository) GetDocuments(ctx context.Context, userID string, status string, page, limit int) ([]*entities.Document, int64, error) {
	var docs []*entities.Document
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status <> ?", entities.DocumentStatusArchived)
	}

	if err := query.Model(&entities.Document{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, count, nil
}

// FindActiveByHash returns documents carrying the given content hash that are
// still valid duplicate-match targets (duplicate not manually ignored).
func (r *documentRepository) FindActiveByHash(ctx context.Context, hash string) ([]*entities.Document, error) {
	var docs []*entities.Document
	if err := r.db.WithContext(ctx).
		Where("file_hash = ? AND duplicate_ignored = ?", hash, false).
		Order("created_at asc").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) ListDocuments(ctx context.Context) ([]*entities.Document, error) {
	var docs []*entities.Document
	if err := r.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) UpsertDocuments(ctx context.Context, docs []*entities.Document) error {
	for _, doc := range docs {
		if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
			return err
		}
	}
	return nil
}
