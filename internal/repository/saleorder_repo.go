package repository

import (
	"context"
	"errors"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a conditional status transition finds
// the order no longer in the expected state at the instant of the attempt.
var ErrStatusConflict = errors.New("order status conflict")

type SaleOrderRepository interface {
	Create(ctx context.Context, order *model.SaleOrder) error
	CreateItem(ctx context.Context, item *model.SaleOrderItem) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.SaleOrder, int64, error)
}

type saleOrderRepository struct {
	db *gorm.DB
}

func NewSaleOrderRepository(db *gorm.DB) SaleOrderRepository {
	return &saleOrderRepository{db: db}
}

func (r *saleOrderRepository) Create(ctx context.Context, order *model.SaleOrder) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *saleOrderRepository) CreateItem(ctx context.Context, item *model.SaleOrderItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *saleOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error) {
	var order model.SaleOrder
	if err := GetDB(ctx, r.db).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// TransitionStatus moves the order from one status to another in a single
// conditional statement. The WHERE predicate is the concurrency guard: two
// concurrent transitions out of the same state resolve to exactly one winner.
func (r *saleOrderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	res := GetDB(ctx, r.db).Model(&model.SaleOrder{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *saleOrderRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return GetDB(ctx, r.db).Model(&model.SaleOrderItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

func (r *saleOrderRepository) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.SaleOrder{}).Where("id = ?", id).Update("total", total).Error
}

func (r *saleOrderRepository) List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.SaleOrder, int64, error) {
	var orders []model.SaleOrder
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.SaleOrder{}).Where("company_id = ?", companyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Items").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
