package trade

import (
	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderCancelled     = "OrderCancelled"
)

// OrderCreatedItem is the event payload for a single order line
type OrderCreatedItem struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	RemoteID  string     `json:"remote_id,omitempty"`
	Source    ItemSource `json:"source"`
	Quantity  int        `json:"quantity"`
}

// OrderCreatedEvent is published when a checkout completes
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID          `json:"order_id"`
	OrderNumber   string             `json:"order_number"`
	CustomerEmail string             `json:"customer_email"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []OrderCreatedItem `json:"items"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	items := make([]OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderCreatedItem{
			ProductID: item.ProductID,
			RemoteID:  item.RemoteID,
			Source:    item.Source,
			Quantity:  item.Quantity,
		})
	}
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerEmail:   order.CustomerEmail,
		PaymentMethod:   order.PaymentMethod,
		TotalAmount:     order.TotalAmount,
		Items:           items,
	}
}

// OrderCancelledEvent is published alongside the status change when an
// order is cancelled. It carries the line items so subscribers can
// release whatever the order had claimed, stock above all.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID          `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Items       []OrderCreatedItem `json:"items"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	items := make([]OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderCreatedItem{
			ProductID: item.ProductID,
			RemoteID:  item.RemoteID,
			Source:    item.Source,
			Quantity:  item.Quantity,
		})
	}
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Items:           items,
	}
}

// OrderStatusChangedEvent is published when an order moves through its lifecycle
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
