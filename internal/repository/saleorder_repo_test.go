package repository

import (
	"context"
	"testing"

	"invoicing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingOrder(t *testing.T, repo SaleOrderRepository) *model.SaleOrder {
	t.Helper()
	order := &model.SaleOrder{
		SaleOrderNumber: "SALEORD" + uuid.NewString()[:8],
		TokenNo:         "1",
		CompanyID:       uuid.New(),
		Status:          model.OrderStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestTransitionStatus_MovesPendingOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleOrderRepository(db)
	order := seedPendingOrder(t, repo)

	err := repo.TransitionStatus(context.Background(), order.ID, model.OrderStatusPending, model.OrderStatusCompleted)
	require.NoError(t, err)

	got, err := repo.FindByIDWithItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, got.Status)
}

func TestTransitionStatus_RejectsStaleFromState(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleOrderRepository(db)
	order := seedPendingOrder(t, repo)

	require.NoError(t, repo.TransitionStatus(context.Background(), order.ID, model.OrderStatusPending, model.OrderStatusCompleted))

	// the order is no longer pending, so a second pending-based transition
	// finds no row to update
	err := repo.TransitionStatus(context.Background(), order.ID, model.OrderStatusPending, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrStatusConflict)

	got, err := repo.FindByIDWithItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, got.Status)
}

func TestTransitionStatus_UnknownOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleOrderRepository(db)

	err := repo.TransitionStatus(context.Background(), uuid.New(), model.OrderStatusPending, model.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrStatusConflict)
}
