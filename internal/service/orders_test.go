package service

import (
	"context"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, st *fakeStore, txID, customerEmail, managerEmail string) *models.Order {
	t.Helper()
	order := &models.Order{
		ProductID:     1,
		TransactionID: txID,
		CustomerEmail: customerEmail,
		ManagerEmail:  managerEmail,
		Status:        models.OrderStatusPending,
		Quantity:      1,
		Price:         25.00,
	}
	require.NoError(t, st.CreateOrder(context.Background(), order))
	return order
}

func TestListOrdersFilters(t *testing.T) {
	st := newFakeStore()
	svc := NewOrderService(st, &fakeEvents{})

	seedOrder(t, st, "pi_1", "a@b.com", "mira@sellers.test")
	seedOrder(t, st, "pi_2", "c@d.com", "mira@sellers.test")
	seedOrder(t, st, "pi_3", "a@b.com", "ola@sellers.test")

	all, err := svc.ListOrders(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCustomer, err := svc.ListOrders(context.Background(), "a@b.com", "")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byManager, err := svc.ListOrders(context.Background(), "", "mira@sellers.test")
	require.NoError(t, err)
	assert.Len(t, byManager, 2)
}

func TestDeleteOrder(t *testing.T) {
	st := newFakeStore()
	events := &fakeEvents{}
	svc := NewOrderService(st, events)

	order := seedOrder(t, st, "pi_1", "a@b.com", "mira@sellers.test")

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))

	remaining, _ := st.GetOrders(context.Background())
	assert.Empty(t, remaining)
	require.Len(t, events.deleted, 1)
	assert.Equal(t, order.ID, events.deleted[0].OrderID)
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc := NewOrderService(newFakeStore(), &fakeEvents{})

	err := svc.DeleteOrder(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
