package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"go.uber.org/zap"
)

// ErrInvoiceNotFound is returned when no order carries the invoice or it has no content
var ErrInvoiceNotFound = shared.NewDomainError("NOT_FOUND", "Fabric invoice not found")

// BlobStore reads invoice documents from object storage
type BlobStore interface {
	Download(ctx context.Context, storageKey string) ([]byte, error)
}

// InvoiceDownload is an invoice document ready to be sent as an attachment
type InvoiceDownload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvoiceService serves fabric invoice documents
type InvoiceService struct {
	orders trade.OrderRepository
	blobs  BlobStore
	logger *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. blobs may be nil when object
// storage is disabled, in which case only inline documents are served.
func NewInvoiceService(orders trade.OrderRepository, blobs BlobStore, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{orders: orders, blobs: blobs, logger: logger}
}

// Download returns the invoice document. A storage key takes precedence over
// the inline column.
func (s *InvoiceService) Download(ctx context.Context, invoiceNumber string) (*InvoiceDownload, error) {
	invoice, err := s.orders.FindInvoice(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	data := invoice.Data
	if invoice.StorageKey != "" && s.blobs != nil {
		data, err = s.blobs.Download(ctx, invoice.StorageKey)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, ErrInvoiceNotFound
			}
			return nil, fmt.Errorf("download invoice %s: %w", invoiceNumber, err)
		}
	}
	if len(data) == 0 {
		s.logger.Warn("Fabric invoice has no content",
			zap.String("invoice_number", invoiceNumber),
			zap.String("storage_key", invoice.StorageKey))
		return nil, ErrInvoiceNotFound
	}

	return &InvoiceDownload{
		Filename:    invoice.DownloadFilename(),
		ContentType: invoice.ContentType(),
		Data:        data,
	}, nil
}
