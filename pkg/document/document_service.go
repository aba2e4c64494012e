package document

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/internal/utils/storage"
	"Taxflow-Backend/pkg/analysis"
	"Taxflow-Backend/pkg/reconcile"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DocumentService interface {
		UploadDocument(ctx context.Context, req domain.UploadDocumentRequest, userID string) (domain.UploadDocumentResponse, error)
		GetDocuments(ctx context.Context, userID string, status string, page, limit int) ([]domain.DocumentResponse, int64, error)
		GetDocumentByID(ctx context.Context, id string, userID string) (domain.DocumentResponse, error)
		UpdateDocument(ctx context.Context, id string, req domain.UpdateDocumentRequest, userID string) error
		DeleteDocument(ctx context.Context, id string, userID string) error
		DeleteAllDocuments(ctx context.Context, userID string) error
		BatchPatch(ctx context.Context, req domain.BatchPatchRequest, userID string) (domain.BatchPatchResult, error)
		ResolveDuplicate(ctx context.Context, id string, req domain.ResolveDuplicateRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DocumentDashboardResponse, error)
	}

	documentService struct {
		documentRepository DocumentRepository
		transactions       reconcile.TransactionStore
		tasks              reconcile.TaskStore
		analysisService    analysis.AnalysisService
		syncer             *reconcile.Syncer
		s3                 storage.AwsS3
	}
)

func NewDocumentService(
	documentRepository DocumentRepository,
	transactions reconcile.TransactionStore,
	tasks reconcile.TaskStore,
	analysisService analysis.AnalysisService,
	syncer *reconcile.Syncer,
	s3 storage.AwsS3,
) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		transactions:       transactions,
		tasks:              tasks,
		analysisService:    analysisService,
		syncer:             syncer,
		s3:                 s3,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, req domain.UploadDocumentRequest, userID string) (domain.UploadDocumentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadDocumentResponse{}, domain.ErrParseUUID
	}
	if req.File == nil {
		return domain.UploadDocumentResponse{}, domain.ErrMissingFile
	}

	src, err := req.File.Open()
	if err != nil {
		return domain.UploadDocumentResponse{}, err
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return domain.UploadDocumentResponse{}, err
	}

	docID := uuid.New()
	doc := &entities.Document{
		ID:       docID,
		UserID:   userUUID,
		FileName: req.File.Filename,
		Status:   entities.DocumentStatusAnalyzing,
	}
	if req.StorageLocationID != "" {
		locationID := req.StorageLocationID
		doc.StorageLocationID = &locationID
	}

	// Synchronous, once, at creation time: the hash check is not re-evaluated
	// later. The heuristic duplicate check during analysis is independent.
	hash := Fingerprint(fileData)
	doc.FileHash = &hash
	matches, err := s.documentRepository.FindActiveByHash(ctx, hash)
	if err != nil {
		return domain.UploadDocumentResponse{}, err
	}
	if len(matches) > 0 {
		originalID := matches[0].ID.String()
		doc.DuplicateOfID = &originalID
		doc.Status = entities.DocumentStatusPotentialDuplicate
	}

	contentType := req.File.Header.Get("Content-Type")
	objectKey, err := s.s3.UploadBytes(
		fmt.Sprintf("document-%s", docID.String()),
		fileData,
		contentType,
		"documents",
	)
	if err != nil {
		return domain.UploadDocumentResponse{}, err
	}
	doc.FileURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.documentRepository.CreateDocument(ctx, doc); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadDocumentResponse{}, err
	}

	go s.analyzeAsync(doc.ID.String(), fileData, contentType)

	return domain.UploadDocumentResponse{
		ID:            doc.ID.String(),
		FileName:      doc.FileName,
		FileURL:       doc.FileURL,
		FileHash:      doc.FileHash,
		Status:        doc.Status,
		DuplicateOfID: doc.DuplicateOfID,
	}, nil
}

// analyzeAsync runs the vision extraction in the background, in the same
// fire-and-forget fashion as the upload endpoint returns. Any failure lands on
// the document as an ERROR status, never in the caller.
func (s *documentService) analyzeAsync(docID string, fileData []byte, contentType string) {
	ctx := context.Background()

	result, err := s.analysisService.AnalyzeDocument(ctx, fileData, contentType)
	if err != nil {
		s.markAnalysisFailed(ctx, docID, err)
		return
	}

	doc, err := s.documentRepository.GetDocumentByID(ctx, docID)
	if err != nil {
		log.Printf("analysis finished for missing document %s: %v", docID, err)
		return
	}

	meta := analysis.Normalize(result, time.Now())
	applyExtraction(doc, result, &meta)

	others, err := s.documentRepository.ListDocuments(ctx)
	if err != nil {
		s.markAnalysisFailed(ctx, docID, err)
		return
	}
	derived := analysis.DeriveStatus(result, withoutDocument(others, docID))

	// The upload-time hash flag wins until the user resolves it.
	if doc.Status == entities.DocumentStatusPotentialDuplicate && !doc.DuplicateIgnored {
		derived = entities.DocumentStatusPotentialDuplicate
	}
	doc.Status = derived
	doc.ErrorMessage = ""

	if err := s.documentRepository.UpdateDocument(ctx, doc); err != nil {
		log.Printf("error saving analysis result for document %s: %v", docID, err)
		return
	}

	if err := s.syncer.AfterDocumentsChanged(ctx); err != nil {
		log.Printf("error resyncing links after analysis of %s: %v", docID, err)
	}
}

func (s *documentService) markAnalysisFailed(ctx context.Context, docID string, cause error) {
	doc, err := s.documentRepository.GetDocumentByID(ctx, docID)
	if err != nil {
		log.Printf("analysis failed for missing document %s: %v", docID, cause)
		return
	}
	doc.Status = entities.DocumentStatusError
	doc.ErrorMessage = cause.Error()
	if err := s.documentRepository.UpdateDocument(ctx, doc); err != nil {
		log.Printf("error saving analysis failure for document %s: %v", docID, err)
	}
}

func applyExtraction(doc *entities.Document, result domain.ExtractionResult, meta *entities.OcrMetadata) {
	doc.Vendor = result.Vendor
	doc.TotalAmount = result.TotalAmount
	doc.VatAmount = result.VatAmount
	doc.InvoiceNumber = result.InvoiceNumber
	doc.TaxCategory = result.TaxCategory
	doc.InvoiceType = result.InvoiceType
	if date, err := time.Parse("2006-01-02", result.DocumentDate); err == nil {
		doc.DocumentDate = &date
		doc.Year = date.Year()
		doc.Quarter = quarterOf(date)
	}
	doc.Ocr = meta
	if raw, err := json.Marshal(result); err == nil {
		doc.RawAnalysis = raw
	}
}

func (s *documentService) GetDocuments(ctx context.Context, userID string, status string, page, limit int) ([]domain.DocumentResponse, int64, error) {
	docs, count, err := s.documentRepository.GetDocuments(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.DocumentResponse
	for _, doc := range docs {
		response = append(response, toDocumentResponse(doc))
	}
	return response, count, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, id string, userID string) (domain.DocumentResponse, error) {
	doc, err := s.getOwnedDocument(ctx, id, userID)
	if err != nil {
		return domain.DocumentResponse{}, err
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id string, req domain.UpdateDocumentRequest, userID string) error {
	doc, err := s.getOwnedDocument(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := applyPatch(doc, req); err != nil {
		return err
	}

	if err := s.documentRepository.UpdateDocument(ctx, doc); err != nil {
		return err
	}
	return s.syncer.AfterDocumentsChanged(ctx)
}

func applyPatch(doc *entities.Document, req domain.UpdateDocumentRequest) error {
	if req.Vendor != "" {
		doc.Vendor = req.Vendor
	}
	if req.TotalAmount != 0 {
		doc.TotalAmount = req.TotalAmount
	}
	if req.VatAmount != 0 {
		doc.VatAmount = req.VatAmount
	}
	if req.InvoiceNumber != "" {
		doc.InvoiceNumber = req.InvoiceNumber
	}
	if req.TaxCategory != "" {
		doc.TaxCategory = req.TaxCategory
	}
	if req.InvoiceType != "" {
		doc.InvoiceType = req.InvoiceType
	}
	if req.DocumentDate != "" {
		date, err := time.Parse("2006-01-02", req.DocumentDate)
		if err != nil {
			return domain.ErrInvalidDocumentDate
		}
		doc.DocumentDate = &date
		doc.Year = date.Year()
		doc.Quarter = quarterOf(date)
	}
	if req.Status != "" {
		doc.Status = req.Status
	}
	return nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string, userID string) error {
	doc, err := s.getOwnedDocument(ctx, id, userID)
	if err != nil {
		return err
	}

	if doc.FileURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(doc.FileURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.documentRepository.DeleteDocument(ctx, id); err != nil {
		return err
	}
	return s.afterDocumentsRemoved(ctx)
}

func (s *documentService) DeleteAllDocuments(ctx context.Context, userID string) error {
	docs, err := s.documentRepository.ListDocuments(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.UserID.String() != userID || doc.FileURL == "" {
			continue
		}
		if objectKey := s.s3.GetObjectKeyFromLink(doc.FileURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.documentRepository.DeleteAllDocuments(ctx, userID); err != nil {
		return err
	}
	return s.afterDocumentsRemoved(ctx)
}

// afterDocumentsRemoved sweeps duplicate references made stale by the
// deletion, then lets the synchronizer repair both link directions.
func (s *documentService) afterDocumentsRemoved(ctx context.Context) error {
	docs, err := s.documentRepository.ListDocuments(ctx)
	if err != nil {
		return err
	}
	swept, changed := SweepStaleDuplicateRefs(docs)
	if changed {
		var dirty []*entities.Document
		for i, doc := range swept {
			if docs[i] != doc {
				dirty = append(dirty, doc)
			}
		}
		if err := s.documentRepository.UpsertDocuments(ctx, dirty); err != nil {
			return err
		}
	}
	return s.syncer.AfterDocumentsChanged(ctx)
}

func (s *documentService) BatchPatch(ctx context.Context, req domain.BatchPatchRequest, userID string) (domain.BatchPatchResult, error) {
	result := domain.BatchPatchResult{Failed: map[string]string{}}

	// One item's failure never aborts the batch.
	for _, item := range req.Items {
		doc, err := s.getOwnedDocument(ctx, item.ID, userID)
		if err == nil {
			if patchErr := applyPatch(doc, item.Patch); patchErr != nil {
				err = patchErr
			} else {
				err = s.documentRepository.UpdateDocument(ctx, doc)
			}
		}
		if err != nil {
			result.Failed[item.ID] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}

	if err := s.syncer.AfterDocumentsChanged(ctx); err != nil {
		return result, err
	}
	return result, nil
}

func (s *documentService) ResolveDuplicate(ctx context.Context, id string, req domain.ResolveDuplicateRequest, userID string) error {
	doc, err := s.getOwnedDocument(ctx, id, userID)
	if err != nil {
		return err
	}

	switch req.Action {
	case domain.DuplicateActionIgnore, domain.DuplicateActionKeepBoth:
		// Idempotent: re-resolving an already resolved duplicate is a no-op.
		doc.DuplicateIgnored = true
		if doc.Status == entities.DocumentStatusPotentialDuplicate {
			doc.Status = entities.DocumentStatusOK
		}
		return s.documentRepository.UpdateDocument(ctx, doc)
	case domain.DuplicateActionDelete:
		return s.DeleteDocument(ctx, id, userID)
	default:
		return domain.ErrInvalidDuplicateAction
	}
}

func (s *documentService) GetDashboardStats(ctx context.Context, userID string) (domain.DocumentDashboardResponse, error) {
	docs, err := s.documentRepository.ListDocuments(ctx)
	if err != nil {
		return domain.DocumentDashboardResponse{}, err
	}
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return domain.DocumentDashboardResponse{}, err
	}
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return domain.DocumentDashboardResponse{}, err
	}

	stats := domain.DocumentDashboardResponse{}
	vatByQuarter := map[[2]int]*domain.QuarterVat{}

	for _, doc := range docs {
		if doc.UserID.String() != userID {
			continue
		}
		stats.TotalDocuments++
		switch doc.Status {
		case entities.DocumentStatusOK:
			stats.OkDocuments++
		case entities.DocumentStatusAnalyzing:
			stats.AnalyzingDocuments++
		case entities.DocumentStatusPotentialDuplicate:
			stats.PotentialDuplicates++
		case entities.DocumentStatusError:
			stats.ErrorDocuments++
		}

		if doc.Year == 0 || doc.Quarter == 0 {
			continue
		}
		key := [2]int{doc.Year, doc.Quarter}
		entry, ok := vatByQuarter[key]
		if !ok {
			entry = &domain.QuarterVat{Year: doc.Year, Quarter: doc.Quarter}
			vatByQuarter[key] = entry
		}
		// Simplified, illustrative VAT arithmetic, not a certified computation.
		switch doc.InvoiceType {
		case entities.InvoiceTypeOutgoing:
			entry.VatOwed += doc.VatAmount
		case entities.InvoiceTypeIncoming:
			entry.VatPaid += doc.VatAmount
		}
		entry.Estimate = entry.VatOwed - entry.VatPaid
	}

	for _, tx := range txs {
		if tx.Status == entities.TransactionStatusMissingReceipt {
			stats.MissingReceipts++
		}
	}
	for _, task := range tasks {
		if task.Status != entities.TaskStatusDone {
			stats.OpenTasks++
		}
	}
	for _, entry := range vatByQuarter {
		stats.QuarterVat = append(stats.QuarterVat, *entry)
	}

	return stats, nil
}

func (s *documentService) getOwnedDocument(ctx context.Context, id string, userID string) (*entities.Document, error) {
	doc, err := s.documentRepository.GetDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedDocument
	}
	return doc, nil
}

func withoutDocument(docs []*entities.Document, id string) []*entities.Document {
	out := make([]*entities.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.ID.String() == id {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func quarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}

func toDocumentResponse(doc *entities.Document) domain.DocumentResponse {
	return domain.DocumentResponse{
		ID:                   doc.ID.String(),
		FileName:             doc.FileName,
		FileURL:              doc.FileURL,
		FileHash:             doc.FileHash,
		Status:               doc.Status,
		ErrorMessage:         doc.ErrorMessage,
		DuplicateOfID:        doc.DuplicateOfID,
		DuplicateIgnored:     doc.DuplicateIgnored,
		Vendor:               doc.Vendor,
		TotalAmount:          doc.TotalAmount,
		VatAmount:            doc.VatAmount,
		InvoiceNumber:        doc.InvoiceNumber,
		TaxCategory:          doc.TaxCategory,
		InvoiceType:          doc.InvoiceType,
		DocumentDate:         doc.DocumentDate,
		Year:                 doc.Year,
		Quarter:              doc.Quarter,
		LinkedTransactionIDs: doc.LinkedTransactionIDs,
		StorageLocationID:    doc.StorageLocationID,
		Ocr:                  doc.Ocr,
		CreatedAt:            doc.CreatedAt,
	}
}
