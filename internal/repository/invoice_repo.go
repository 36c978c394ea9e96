package repository

import (
	"context"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindBySaleOrderID(ctx context.Context, saleOrderID uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.Invoice, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("SaleOrder").Preload("SaleOrder.Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindBySaleOrderID(ctx context.Context, saleOrderID uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("SaleOrder").First(&invoice, "sale_order_id = ?", saleOrderID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	base := db.Model(&model.Invoice{}).
		Joins("JOIN sale_orders ON sale_orders.id = invoices.sale_order_id").
		Where("sale_orders.company_id = ?", companyID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("SaleOrder").
		Joins("JOIN sale_orders ON sale_orders.id = invoices.sale_order_id").
		Where("sale_orders.company_id = ?", companyID).
		Order("invoices.created_at desc").
		Offset(offset).Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
