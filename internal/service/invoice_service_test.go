package service

import (
	"context"
	"testing"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInvoiceBySaleOrder(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	invoiceSvc := NewInvoiceService(repository.NewInvoiceRepository(db))
	company := seedCompany(t, db, "Acme")
	other := seedCompany(t, db, "Other")
	product := seedProduct(t, db, company.ID, "Tea", "10.00", 5)
	principal := testPrincipal(company.ID)

	order, err := orderSvc.CreateOrder(context.Background(), principal, CreateSaleOrderRequest{
		CompanyID: company.ID.String(),
		Products:  []OrderLineRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	// no invoice before the order is placed
	_, err = invoiceSvc.GetInvoiceBySaleOrder(context.Background(), principal, order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = orderSvc.PlaceOrder(context.Background(), principal, order.ID)
	require.NoError(t, err)

	invoice, err := invoiceSvc.GetInvoiceBySaleOrder(context.Background(), principal, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, invoice.SaleOrderID)

	fetched, err := invoiceSvc.GetInvoice(context.Background(), principal, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, fetched.ID)

	_, err = invoiceSvc.GetInvoiceBySaleOrder(context.Background(), testPrincipal(other.ID), order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
