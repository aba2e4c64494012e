package lexoffice

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/internal/utils"
	"Taxflow-Backend/internal/utils/mailing"
	"Taxflow-Backend/internal/utils/storage"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

type (
	// DocumentSource is the slice of the document repository the sender needs.
	DocumentSource interface {
		GetDocumentByID(ctx context.Context, id string) (*entities.Document, error)
		UpdateDocument(ctx context.Context, doc *entities.Document) error
	}

	LocationSource interface {
		GetLocations(ctx context.Context) ([]*entities.StorageLocation, error)
	}

	SenderService interface {
		SendDocuments(ctx context.Context, req domain.SendDocumentsRequest) (domain.SendDocumentsResponse, error)
		Progress() domain.SendProgress
	}

	senderService struct {
		client    Client
		documents DocumentSource
		locations LocationSource
		s3        storage.AwsS3

		mu       sync.Mutex
		progress domain.SendProgress
	}
)

func NewSenderService(client Client, documents DocumentSource, locations LocationSource, s3 storage.AwsS3) SenderService {
	return &senderService{
		client:    client,
		documents: documents,
		locations: locations,
		s3:        s3,
	}
}

// SendDocuments creates one voucher per document and attaches the stored
// file. Items are processed sequentially; one failure is recorded and the
// batch continues. A failure digest goes out by mail when anything failed.
func (s *senderService) SendDocuments(ctx context.Context, req domain.SendDocumentsRequest) (domain.SendDocumentsResponse, error) {
	total := len(req.DocumentIDs)
	s.setProgress(0, total)
	defer s.setProgress(0, 0)

	lexofficeLocation := s.findLexofficeLocation(ctx)

	var response domain.SendDocumentsResponse
	for i, docID := range req.DocumentIDs {
		s.setProgress(i+1, total)

		voucherID, err := s.sendOne(ctx, docID, lexofficeLocation)
		if err != nil {
			response.Failed = append(response.Failed, domain.SendItemResult{
				DocumentID: docID,
				Error:      err.Error(),
			})
			continue
		}
		response.Succeeded = append(response.Succeeded, domain.SendItemResult{
			DocumentID: docID,
			VoucherID:  voucherID,
		})
	}

	if len(response.Failed) > 0 {
		s.mailFailureDigest(response.Failed)
	}

	return response, nil
}

func (s *senderService) sendOne(ctx context.Context, docID string, lexofficeLocation *string) (string, error) {
	doc, err := s.documents.GetDocumentByID(ctx, docID)
	if err != nil {
		return "", domain.ErrDocumentNotFound
	}

	objectKey := s.s3.GetObjectKeyFromLink(doc.FileURL)
	if objectKey == "" {
		return "", fmt.Errorf("document %s has no stored file", docID)
	}
	fileData, err := s.s3.GetFile(objectKey)
	if err != nil {
		return "", err
	}

	voucherID, err := s.client.CreateVoucher(ctx, doc)
	if err != nil {
		return "", err
	}
	if err := s.client.UploadVoucherFile(ctx, voucherID, doc.FileName, fileData); err != nil {
		return "", err
	}

	if lexofficeLocation != nil {
		doc.StorageLocationID = lexofficeLocation
		if err := s.documents.UpdateDocument(ctx, doc); err != nil {
			log.Printf("sent document %s but failed to update its storage location: %v", docID, err)
		}
	}

	return voucherID, nil
}

func (s *senderService) Progress() domain.SendProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *senderService) setProgress(current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = domain.SendProgress{Current: current, Total: total}
}

func (s *senderService) findLexofficeLocation(ctx context.Context) *string {
	locations, err := s.locations.GetLocations(ctx)
	if err != nil {
		return nil
	}
	for _, location := range locations {
		if location.Type == entities.StorageTypeLexoffice {
			id := location.ID.String()
			return &id
		}
	}
	return nil
}

func (s *senderService) mailFailureDigest(failed []domain.SendItemResult) {
	recipient := utils.GetConfig("REPORT_EMAIL")
	if recipient == "" || utils.GetConfig("SMTP_HOST") == "" {
		return
	}

	var lines []string
	for _, item := range failed {
		lines = append(lines, fmt.Sprintf("<li>document %s: %s</li>", item.DocumentID, item.Error))
	}
	body := "<p>The following documents could not be sent to lexoffice:</p><ul>" +
		strings.Join(lines, "") + "</ul>"

	subject := fmt.Sprintf("lexoffice upload: %d document(s) failed", len(failed))
	if err := mailing.SendMail(recipient, subject, body); err != nil {
		log.Printf("failed to send lexoffice failure digest: %v", err)
	}
}
