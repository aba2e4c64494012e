package transaction

import (
	"Taxflow-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	TransactionRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.AccountingTransaction) error
		GetTransactionByID(ctx context.Context, id string) (*entities.AccountingTransaction, error)
		UpdateTransaction(ctx context.Context, tx *entities.AccountingTransaction) error
		DeleteTransaction(ctx context.Context, id string) error
		GetTransactions(ctx context.Context, status string, page, limit int) ([]*entities.AccountingTransaction, int64, error)

		// Snapshot access for the merge engine and the link synchronizer.
		ListTransactions(ctx context.Context) ([]*entities.AccountingTransaction, error)
		UpsertTransactions(ctx context.Context, txs []*entities.AccountingTransaction) error
	}

	transactionRepository struct {
		db *gorm.DB
	}
)

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, tx *entities.AccountingTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id string) (*entities.AccountingTransaction, error) {
	var tx entities.AccountingTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, tx *entities.AccountingTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AccountingTransaction{}).Error
}

func (r *transactionRepository) GetTransactions(ctx context.Context, status string, page, limit int) ([]*entities.AccountingTransaction, int64, error) {
	var txs []*entities.AccountingTransaction
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.AccountingTransaction{})
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("date desc").Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, count, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]*entities.AccountingTransaction, error) {
	var txs []*entities.AccountingTransaction
	if err := r.db.WithContext(ctx).Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *transactionRepository) UpsertTransactions(ctx context.Context, txs []*entities.AccountingTransaction) error {
	for _, tx := range txs {
		if err := r.db.WithContext(ctx).Save(tx).Error; err != nil {
			return err
		}
	}
	return nil
}
