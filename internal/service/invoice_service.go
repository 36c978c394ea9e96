package service

import (
	"context"
	"errors"
	"time"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceResponse struct {
	ID          string `json:"id"`
	SaleOrderID string `json:"sale_order_id"`
	CreatedAt   string `json:"created_at"`
}

// InvoiceService emits and reads invoices. Emit is called exactly once per
// completed order; invoices have no update or cancellation path.
type InvoiceService interface {
	Emit(ctx context.Context, saleOrderID uuid.UUID) (*InvoiceResponse, error)
	GetInvoice(ctx context.Context, principal model.Principal, id string) (*InvoiceResponse, error)
	GetInvoiceBySaleOrder(ctx context.Context, principal model.Principal, saleOrderID string) (*InvoiceResponse, error)
	ListInvoices(ctx context.Context, principal model.Principal, page, limit int) ([]InvoiceResponse, int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo}
}

func (s *invoiceService) Emit(ctx context.Context, saleOrderID uuid.UUID) (*InvoiceResponse, error) {
	invoice := &model.Invoice{SaleOrderID: saleOrderID}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create invoice", err)
	}
	return mapInvoiceToResponse(invoice), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, principal model.Principal, id string) (*InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid invoice id")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Invoice not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load invoice", err)
	}

	if invoice.SaleOrder != nil && !principal.IsSameCompany(invoice.SaleOrder.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to view this invoice")
	}

	return mapInvoiceToResponse(invoice), nil
}

func (s *invoiceService) GetInvoiceBySaleOrder(ctx context.Context, principal model.Principal, saleOrderID string) (*InvoiceResponse, error) {
	orderID, err := uuid.Parse(saleOrderID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid order id")
	}

	invoice, err := s.invoiceRepo.FindBySaleOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Invoice not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load invoice", err)
	}

	if invoice.SaleOrder != nil && !principal.IsSameCompany(invoice.SaleOrder.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to view this invoice")
	}

	return mapInvoiceToResponse(invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, principal model.Principal, page, limit int) ([]InvoiceResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	invoices, total, err := s.invoiceRepo.List(ctx, principal.CompanyID, page, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list invoices", err)
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		res = append(res, *mapInvoiceToResponse(&invoices[i]))
	}
	return res, total, nil
}

func mapInvoiceToResponse(invoice *model.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          invoice.ID.String(),
		SaleOrderID: invoice.SaleOrderID.String(),
		CreatedAt:   invoice.CreatedAt.Format(time.RFC3339),
	}
}
