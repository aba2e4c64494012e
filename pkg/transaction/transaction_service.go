package transaction

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/pkg/reconcile"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// LedgerProvider is the slice of the lexoffice client the import needs.
	LedgerProvider interface {
		FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error)
		Simulated() bool
	}

	TransactionService interface {
		GetTransactions(ctx context.Context, status string, page, limit int) ([]domain.TransactionResponse, int64, error)
		CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (domain.TransactionResponse, error)
		UpdateTransaction(ctx context.Context, id string, req domain.UpdateTransactionRequest) error
		DeleteTransaction(ctx context.Context, id string) error
		ImportFromLedger(ctx context.Context, req domain.ImportTransactionsRequest) (domain.ImportTransactionsResponse, error)
	}

	transactionService struct {
		transactionRepository TransactionRepository
		documents             reconcile.DocumentStore
		ledger                LedgerProvider
		syncer                *reconcile.Syncer
	}
)

func NewTransactionService(
	transactionRepository TransactionRepository,
	documents reconcile.DocumentStore,
	ledger LedgerProvider,
	syncer *reconcile.Syncer,
) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		documents:             documents,
		ledger:                ledger,
		syncer:                syncer,
	}
}

func (s *transactionService) GetTransactions(ctx context.Context, status string, page, limit int) ([]domain.TransactionResponse, int64, error) {
	txs, count, err := s.transactionRepository.GetTransactions(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.TransactionResponse
	for _, tx := range txs {
		response = append(response, toTransactionResponse(tx))
	}
	return response, count, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (domain.TransactionResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.TransactionResponse{}, domain.ErrInvalidDateRange
	}

	tx := &entities.AccountingTransaction{
		ID:          uuid.New().String(),
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		InvoiceType: req.InvoiceType,
		TaxCategory: req.TaxCategory,
		Source:      entities.TransactionSourceManual,
	}
	if req.DocumentID != "" {
		docID := req.DocumentID
		tx.DocumentID = &docID
	}
	tx.Status = manualStatus(req.Draft, tx.DocumentID)

	if err := s.transactionRepository.CreateTransaction(ctx, tx); err != nil {
		return domain.TransactionResponse{}, err
	}
	if err := s.syncer.AfterTransactionsChanged(ctx); err != nil {
		return domain.TransactionResponse{}, err
	}
	return toTransactionResponse(tx), nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, id string, req domain.UpdateTransactionRequest) error {
	tx, err := s.transactionRepository.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return domain.ErrInvalidDateRange
		}
		tx.Date = date
	}
	if req.Description != "" {
		tx.Description = req.Description
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.InvoiceType != "" {
		tx.InvoiceType = req.InvoiceType
	}
	if req.TaxCategory != "" {
		tx.TaxCategory = req.TaxCategory
	}
	if req.DocumentID != nil {
		if *req.DocumentID == "" {
			tx.DocumentID = nil
		} else {
			tx.DocumentID = req.DocumentID
		}
	}

	// A draft stays a draft until a receipt is attached.
	if tx.Status != entities.TransactionStatusDraft || tx.DocumentID != nil {
		tx.Status = statusFor(tx.DocumentID)
	}

	if err := s.transactionRepository.UpdateTransaction(ctx, tx); err != nil {
		return err
	}
	return s.syncer.AfterTransactionsChanged(ctx)
}

func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.transactionRepository.GetTransactionByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}
	if err := s.transactionRepository.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return s.syncer.AfterTransactionsChanged(ctx)
}

func (s *transactionService) ImportFromLedger(ctx context.Context, req domain.ImportTransactionsRequest) (domain.ImportTransactionsResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return domain.ImportTransactionsResponse{}, domain.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || end.Before(start) {
		return domain.ImportTransactionsResponse{}, domain.ErrInvalidDateRange
	}

	incoming, err := s.ledger.FetchTransactions(ctx, start, end)
	if err != nil {
		return domain.ImportTransactionsResponse{}, err
	}

	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return domain.ImportTransactionsResponse{}, err
	}
	existing, err := s.transactionRepository.ListTransactions(ctx)
	if err != nil {
		return domain.ImportTransactionsResponse{}, err
	}

	next, notifications, stats := reconcile.MergeTransactions(
		incoming, existing, reconcile.BuildInvoiceIndex(docs), time.Now())

	var dirty []*entities.AccountingTransaction
	for i, tx := range next {
		if i >= len(existing) || existing[i] != tx {
			dirty = append(dirty, tx)
		}
	}
	if len(dirty) > 0 {
		if err := s.transactionRepository.UpsertTransactions(ctx, dirty); err != nil {
			return domain.ImportTransactionsResponse{}, err
		}
	}

	if err := s.syncer.AfterTransactionsChanged(ctx); err != nil {
		return domain.ImportTransactionsResponse{}, err
	}

	return domain.ImportTransactionsResponse{
		Imported:        stats.Imported,
		Updated:         stats.Updated,
		Skipped:         stats.Skipped,
		MissingReceipts: stats.MissingReceipts,
		Notifications:   notifications,
		Simulated:       s.ledger.Simulated(),
	}, nil
}

func manualStatus(draft bool, documentID *string) string {
	if draft {
		return entities.TransactionStatusDraft
	}
	return statusFor(documentID)
}

func statusFor(documentID *string) string {
	if documentID != nil {
		return entities.TransactionStatusComplete
	}
	return entities.TransactionStatusMissingReceipt
}

func toTransactionResponse(tx *entities.AccountingTransaction) domain.TransactionResponse {
	return domain.TransactionResponse{
		ID:          tx.ID,
		ExternalID:  tx.ExternalID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		InvoiceType: tx.InvoiceType,
		TaxCategory: tx.TaxCategory,
		DocumentID:  tx.DocumentID,
		Status:      tx.Status,
		Source:      tx.Source,
		CreatedAt:   tx.CreatedAt,
	}
}
