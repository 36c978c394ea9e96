package repository

import (
	"context"
	"testing"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceCreate_OnePerSaleOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	saleOrderID := uuid.New()

	require.NoError(t, repo.Create(context.Background(), &model.Invoice{SaleOrderID: saleOrderID}))

	// the unique index on sale_order_id rejects a second invoice
	err := repo.Create(context.Background(), &model.Invoice{SaleOrderID: saleOrderID})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Invoice{}).Where("sale_order_id = ?", saleOrderID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
