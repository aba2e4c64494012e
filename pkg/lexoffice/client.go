package lexoffice

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/entities"
	"Taxflow-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.lexoffice.io/v1"

type (
	Client interface {
		FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error)
		GetVoucher(ctx context.Context, id string) (domain.LedgerVoucher, error)
		CreateVoucher(ctx context.Context, doc *entities.Document) (string, error)
		UploadVoucherFile(ctx context.Context, voucherID string, fileName string, data []byte) error
		Simulated() bool
	}

	client struct {
		http    *http.Client
		apiKey  string
		baseURL string
	}
)

// NewClient reads the lexoffice credentials from the application config.
// Without an API key the client runs in simulation mode and serves a
// deterministic sample batch, so the import flow stays demoable offline.
func NewClient() Client {
	baseURL := utils.GetConfig("LEXOFFICE_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		http:    &http.Client{Timeout: 30 * time.Second},
		apiKey:  utils.GetConfig("LEXOFFICE_API_KEY"),
		baseURL: baseURL,
	}
}

func (c *client) Simulated() bool {
	return c.apiKey == ""
}

type voucherlistPage struct {
	Content []domain.LedgerTransaction `json:"content"`
	Next    string                     `json:"next"`
}

// FetchTransactions lists all vouchers in the date range, following the
// next-link token until the listing is exhausted.
func (c *client) FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error) {
	if c.Simulated() {
		return sampleTransactions(start, end), nil
	}

	var all []domain.LedgerTransaction
	next := fmt.Sprintf("%s/voucherlist?voucherDateFrom=%s&voucherDateTo=%s",
		c.baseURL,
		url.QueryEscape(start.Format("2006-01-02")),
		url.QueryEscape(end.Format("2006-01-02")),
	)

	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var page voucherlistPage
		if err := c.do(req, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Content...)
		next = page.Next
	}

	return all, nil
}

func (c *client) GetVoucher(ctx context.Context, id string) (domain.LedgerVoucher, error) {
	if c.Simulated() {
		return domain.LedgerVoucher{ID: id, VoucherNumber: "SIM-" + id}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/vouchers/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.LedgerVoucher{}, err
	}

	var voucher domain.LedgerVoucher
	if err := c.do(req, &voucher); err != nil {
		return domain.LedgerVoucher{}, err
	}
	return voucher, nil
}

func (c *client) CreateVoucher(ctx context.Context, doc *entities.Document) (string, error) {
	if c.Simulated() {
		return "sim-voucher-" + doc.ID.String(), nil
	}

	voucherType := "purchaseinvoice"
	if doc.InvoiceType == entities.InvoiceTypeOutgoing {
		voucherType = "salesinvoice"
	}

	payload := map[string]interface{}{
		"type":             voucherType,
		"voucherNumber":    doc.InvoiceNumber,
		"totalGrossAmount": doc.TotalAmount,
		"taxAmount":        doc.VatAmount,
		"remark":           doc.Vendor,
	}
	if doc.DocumentDate != nil {
		payload["voucherDate"] = doc.DocumentDate.Format("2006-01-02")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/vouchers", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *client) UploadVoucherFile(ctx context.Context, voucherID string, fileName string, data []byte) error {
	if c.Simulated() {
		return nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/vouchers/%s/files", c.baseURL, url.PathEscape(voucherID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, nil)
}

func (c *client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", domain.ErrLexofficeRequestFailed, resp.Status, string(snippet))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// sampleTransactions is the simulation-mode payload: a small fixed batch
// spread over the requested range, stable across calls so re-imports exercise
// the idempotent merge path.
func sampleTransactions(start, end time.Time) []domain.LedgerTransaction {
	span := end.Sub(start)
	at := func(fraction float64) time.Time {
		return start.Add(time.Duration(float64(span) * fraction)).Truncate(24 * time.Hour)
	}

	return []domain.LedgerTransaction{
		{
			ExternalID:    "sim-0001",
			Date:          at(0.1),
			Description:   "Office supplies, Staples GmbH",
			Amount:        84.90,
			InvoiceType:   entities.InvoiceTypeIncoming,
			TaxCategory:   "office",
			InvoiceNumber: "ST-2024-0113",
		},
		{
			ExternalID:    "sim-0002",
			Date:          at(0.4),
			Description:   "Consulting fee, client Meier",
			Amount:        2500.00,
			InvoiceType:   entities.InvoiceTypeOutgoing,
			TaxCategory:   "services",
			InvoiceNumber: "RE-2024-0042",
		},
		{
			ExternalID:    "sim-0003",
			Date:          at(0.7),
			Description:   "Cloud hosting, monthly",
			Amount:        49.00,
			InvoiceType:   entities.InvoiceTypeIncoming,
			TaxCategory:   "hosting",
			InvoiceNumber: "",
		},
	}
}
