package persistence

import (
	"context"
	"testing"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/aurelia/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, orderNumber, email string, method trade.PaymentMethod, reference string) *trade.Order {
	t.Helper()

	shipping := trade.ShippingAddress{
		Line1:      "14 Marine Drive",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400020",
		Country:    "India",
	}
	o, err := trade.NewOrder(orderNumber, "Priya Sharma", email, "+91 98200 00000", shipping, method, reference)
	require.NoError(t, err)

	productID := uuid.New()
	item, err := trade.NewOrderItem(o.ID, trade.ItemSourceLocal, &productID, "", "Eterna Gold Band", "eterna-gold-band", "", "M", decimal.NewFromInt(24999), 1)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
	require.NoError(t, o.Finalize())
	o.ClearDomainEvents()
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := newTestOrder(t, "AUR-2024-0001", "priya@example.com", trade.PaymentMethodCOD, "")
	require.NoError(t, repo.Save(ctx, o))

	t.Run("find by id loads items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "AUR-2024-0001", found.OrderNumber)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Eterna Gold Band", found.Items[0].Name)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(24999)))
	})

	t.Run("find by order number", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, "AUR-2024-0001")
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("missing order returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindByCustomerEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestOrder(t, "AUR-2024-0010", "priya@example.com", trade.PaymentMethodCOD, "")))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, "AUR-2024-0011", "priya@example.com", trade.PaymentMethodOnline, "pay_abc")))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, "AUR-2024-0012", "other@example.com", trade.PaymentMethodCOD, "")))

	orders, err := repo.FindByCustomerEmail(ctx, "Priya@Example.com", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "priya@example.com", o.CustomerEmail)
		assert.NotEmpty(t, o.Items)
	}
}

func TestGormOrderRepository_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	cod := newTestOrder(t, "AUR-2024-0020", "a@example.com", trade.PaymentMethodCOD, "")
	online := newTestOrder(t, "AUR-2024-0021", "b@example.com", trade.PaymentMethodOnline, "pay_xyz")
	require.NoError(t, cod.ChangeStatus(trade.OrderStatusConfirmed))
	cod.ClearDomainEvents()

	require.NoError(t, repo.Save(ctx, cod))
	require.NoError(t, repo.Save(ctx, online))

	t.Run("status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = trade.OrderStatusConfirmed
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "AUR-2024-0020", orders[0].OrderNumber)
	})

	t.Run("payment status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["payment_status"] = trade.PaymentStatusPaid
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "AUR-2024-0021", orders[0].OrderNumber)
	})

	t.Run("search by order number", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "aur-2024-0021"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})
}

func TestGormOrderRepository_UpdatePersistsTransitions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := newTestOrder(t, "AUR-2024-0030", "c@example.com", trade.PaymentMethodCOD, "")
	require.NoError(t, repo.Save(ctx, o))

	require.NoError(t, o.ChangeStatus(trade.OrderStatusConfirmed))
	require.NoError(t, o.UpdatePaymentStatus(trade.PaymentStatusPaid, "cod-receipt-9"))
	o.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusConfirmed, found.Status)
	assert.Equal(t, trade.PaymentStatusPaid, found.PaymentStatus)
	assert.Equal(t, "cod-receipt-9", found.PaymentReference)
}
