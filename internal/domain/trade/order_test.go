package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		Line1:      "14 Marine Drive",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400020",
		Country:    "India",
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("cod order starts with payment pending", func(t *testing.T) {
		o, err := NewOrder("AUR-2024-0001", "Priya Sharma", "priya@example.com", "+91 98200 00000", validAddress(), PaymentMethodCOD, "")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.False(t, o.IsPaid())
	})

	t.Run("online order requires gateway reference", func(t *testing.T) {
		_, err := NewOrder("AUR-2024-0002", "Priya Sharma", "priya@example.com", "", validAddress(), PaymentMethodOnline, "")
		assert.Error(t, err)
	})

	t.Run("online order with reference starts paid", func(t *testing.T) {
		o, err := NewOrder("AUR-2024-0003", "Priya Sharma", "priya@example.com", "", validAddress(), PaymentMethodOnline, "pay_9f8d7s6a")
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
		assert.True(t, o.IsPaid())
	})

	t.Run("email is normalized", func(t *testing.T) {
		o, err := NewOrder("AUR-2024-0004", "Priya Sharma", " Priya@Example.COM ", "", validAddress(), PaymentMethodCOD, "")
		require.NoError(t, err)
		assert.Equal(t, "priya@example.com", o.CustomerEmail)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewOrder("AUR-2024-0005", "Priya Sharma", "not-an-email", "", validAddress(), PaymentMethodCOD, "")
		assert.Error(t, err)
	})

	t.Run("missing address fields", func(t *testing.T) {
		addr := validAddress()
		addr.City = ""
		_, err := NewOrder("AUR-2024-0006", "Priya Sharma", "priya@example.com", "", addr, PaymentMethodCOD, "")
		assert.Error(t, err)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := NewOrder("AUR-2024-0007", "Priya Sharma", "priya@example.com", "", validAddress(), PaymentMethod("CHEQUE"), "")
		assert.Error(t, err)
	})
}

func TestOrderItems(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		o, err := NewOrder("AUR-2024-0100", "Aisha Khan", "aisha@example.com", "", validAddress(), PaymentMethodCOD, "")
		require.NoError(t, err)
		return o
	}

	t.Run("total is the sum of line totals", func(t *testing.T) {
		o := newOrder(t)
		productID := uuid.New()

		first, err := NewOrderItem(o.ID, ItemSourceLocal, &productID, "", "Eterna Gold Band", "eterna-gold-band", "", "M", decimal.NewFromInt(24999), 2)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(first))

		second, err := NewOrderItem(o.ID, ItemSourceRemote, nil, "gid://shop/Product/42", "Celeste Pendant", "", "", "", decimal.NewFromInt(5000), 1)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(second))

		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(54998)))
	})

	t.Run("finalize requires at least one item", func(t *testing.T) {
		o := newOrder(t)
		assert.Error(t, o.Finalize())
	})

	t.Run("finalize publishes created event", func(t *testing.T) {
		o := newOrder(t)
		productID := uuid.New()
		item, err := NewOrderItem(o.ID, ItemSourceLocal, &productID, "", "Vera Hoops", "vera-hoops", "", "", decimal.NewFromInt(6999), 1)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
		require.NoError(t, o.Finalize())

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*OrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, o.OrderNumber, created.OrderNumber)
		require.Len(t, created.Items, 1)
		assert.Equal(t, ItemSourceLocal, created.Items[0].Source)
	})

	t.Run("local item requires product id", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), ItemSourceLocal, nil, "", "Orphan", "", "", "", decimal.NewFromInt(100), 1)
		assert.Error(t, err)
	})

	t.Run("remote item requires remote id", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), ItemSourceRemote, nil, "", "Orphan", "", "", "", decimal.NewFromInt(100), 1)
		assert.Error(t, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		productID := uuid.New()
		_, err := NewOrderItem(uuid.New(), ItemSourceLocal, &productID, "", "Zero", "", "", "", decimal.NewFromInt(100), 0)
		assert.Error(t, err)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	newOrderWithItem := func(t *testing.T) *Order {
		o, err := NewOrder("AUR-2024-0200", "Aisha Khan", "aisha@example.com", "", validAddress(), PaymentMethodCOD, "")
		require.NoError(t, err)
		productID := uuid.New()
		item, err := NewOrderItem(o.ID, ItemSourceLocal, &productID, "", "Sol Ring", "sol-ring", "", "", decimal.NewFromInt(15500), 1)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
		require.NoError(t, o.Finalize())
		o.ClearDomainEvents()
		return o
	}

	t.Run("happy path", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.ChangeStatus(OrderStatusConfirmed))
		require.NoError(t, o.ChangeStatus(OrderStatusShipped))
		require.NoError(t, o.ChangeStatus(OrderStatusDelivered))
		assert.Equal(t, OrderStatusDelivered, o.Status)
		assert.Len(t, o.GetDomainEvents(), 3)
	})

	t.Run("cancellation emits a release event with the items", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Cancel())

		events := o.GetDomainEvents()
		require.Len(t, events, 2)
		cancelled, ok := events[1].(*OrderCancelledEvent)
		require.True(t, ok)
		assert.Equal(t, o.OrderNumber, cancelled.OrderNumber)
		require.Len(t, cancelled.Items, 1)
		assert.Equal(t, 1, cancelled.Items[0].Quantity)
	})

	t.Run("cannot ship before confirming", func(t *testing.T) {
		o := newOrderWithItem(t)
		assert.Error(t, o.ChangeStatus(OrderStatusShipped))
	})

	t.Run("cannot cancel after shipping", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.ChangeStatus(OrderStatusConfirmed))
		require.NoError(t, o.ChangeStatus(OrderStatusShipped))
		assert.Error(t, o.Cancel())
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.ChangeStatus(OrderStatusConfirmed))
		require.NoError(t, o.ChangeStatus(OrderStatusShipped))
		require.NoError(t, o.ChangeStatus(OrderStatusDelivered))
		assert.Error(t, o.ChangeStatus(OrderStatusCancelled))
	})

	t.Run("items frozen after confirmation", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.ChangeStatus(OrderStatusConfirmed))
		productID := uuid.New()
		item, err := NewOrderItem(o.ID, ItemSourceLocal, &productID, "", "Late Addition", "", "", "", decimal.NewFromInt(100), 1)
		require.NoError(t, err)
		assert.Error(t, o.AddItem(item))
	})
}

func TestOrderPayment(t *testing.T) {
	o, err := NewOrder("AUR-2024-0300", "Aisha Khan", "aisha@example.com", "", validAddress(), PaymentMethodCOD, "")
	require.NoError(t, err)

	t.Run("mark paid on delivery", func(t *testing.T) {
		require.NoError(t, o.UpdatePaymentStatus(PaymentStatusPaid, "cod-receipt-17"))
		assert.True(t, o.IsPaid())
		assert.Equal(t, "cod-receipt-17", o.PaymentReference)
	})

	t.Run("refund is terminal", func(t *testing.T) {
		require.NoError(t, o.UpdatePaymentStatus(PaymentStatusRefunded, ""))
		assert.Error(t, o.UpdatePaymentStatus(PaymentStatusPaid, ""))
	})

	t.Run("unknown payment status", func(t *testing.T) {
		assert.Error(t, o.UpdatePaymentStatus(PaymentStatus("STORE_CREDIT"), ""))
	})
}
