package repository

import (
	"context"
	"errors"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a conditional stock operation finds
// the product missing or its quantity too low at the instant of the attempt.
// Callers treat it as a normal rejection, not a system fault.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository owns all access to products. ReserveStock and
// AdjustStock are the only mutation points for Product.Quantity; both are
// single conditional statements, so concurrent reservations serialize at the
// database with no read-then-write race window.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.Product, int64, error)
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{}).Where("company_id = ?", companyID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Category").Order("created_at desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ReserveStock atomically checks quantity >= requested and decrements it.
// The WHERE predicate is the concurrency guard; any advisory read done
// beforehand is not.
func (r *productRepository) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	res := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// AdjustStock atomically applies a signed delta. Positive delta returns
// stock, negative delta consumes more; the predicate keeps quantity from
// ever going negative.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
