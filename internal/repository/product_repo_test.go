package repository

import (
	"context"
	"sync"
	"testing"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStockedProduct(t *testing.T, db *gorm.DB, quantity int) *model.Product {
	t.Helper()

	product := &model.Product{
		ProductName:  "Tea",
		ProductCode:  "TEA",
		SellingPrice: decimal.NewFromInt(10),
		Quantity:     quantity,
		Unit:         model.UnitPiece,
		CompanyID:    uuid.New(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func currentQuantity(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Quantity
}

func TestReserveStock_DecrementsWhenAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	product := seedStockedProduct(t, db, 5)

	require.NoError(t, repo.ReserveStock(context.Background(), product.ID, 3))
	assert.Equal(t, 2, currentQuantity(t, db, product.ID))

	// draining to exactly zero is allowed
	require.NoError(t, repo.ReserveStock(context.Background(), product.ID, 2))
	assert.Equal(t, 0, currentQuantity(t, db, product.ID))
}

func TestReserveStock_RejectsWhenShort(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	product := seedStockedProduct(t, db, 2)

	err := repo.ReserveStock(context.Background(), product.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, currentQuantity(t, db, product.ID))
}

func TestReserveStock_RejectsUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.ReserveStock(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestReserveStock_ConcurrentLastUnit(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	product := seedStockedProduct(t, db, 1)

	const attempts = 10
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.ReserveStock(context.Background(), product.ID, 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 0, currentQuantity(t, db, product.ID))
}

func TestAdjustStock_AppliesSignedDelta(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	product := seedStockedProduct(t, db, 3)

	require.NoError(t, repo.AdjustStock(context.Background(), product.ID, 2))
	assert.Equal(t, 5, currentQuantity(t, db, product.ID))

	require.NoError(t, repo.AdjustStock(context.Background(), product.ID, -5))
	assert.Equal(t, 0, currentQuantity(t, db, product.ID))
}

func TestAdjustStock_NeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	product := seedStockedProduct(t, db, 3)

	err := repo.AdjustStock(context.Background(), product.ID, -4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, currentQuantity(t, db, product.ID))
}
