package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethod represents how the customer pays for an order
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the payment status is a known state
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// ItemSource indicates which catalog an ordered item came from
type ItemSource string

const (
	ItemSourceLocal  ItemSource = "local"
	ItemSourceRemote ItemSource = "remote"
)

// OrderItem is an immutable snapshot of a purchased product.
// Prices and names are copied at checkout time so later catalog edits
// do not rewrite order history.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	RemoteID    string          `gorm:"type:varchar(120)"`
	Source      ItemSource      `gorm:"type:varchar(10);not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(120)"`
	Image       string          `gorm:"type:varchar(500)"`
	Size        string          `gorm:"type:varchar(40)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line snapshot
func NewOrderItem(orderID uuid.UUID, source ItemSource, productID *uuid.UUID, remoteID, name, slug, image, size string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	switch source {
	case ItemSourceLocal:
		if productID == nil || *productID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Local items require a product ID")
		}
	case ItemSourceRemote:
		if remoteID == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Remote items require a platform product ID")
		}
	default:
		return nil, shared.NewDomainError("INVALID_SOURCE", fmt.Sprintf("Unknown item source: %s", source))
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))
	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		RemoteID:  remoteID,
		Source:    source,
		Name:      name,
		Slug:      slug,
		Image:     image,
		Size:      size,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice.Mul(qty),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ShippingAddress is the delivery address captured at checkout
type ShippingAddress struct {
	Line1      string `gorm:"column:ship_line1;type:varchar(200)" json:"line1"`
	Line2      string `gorm:"column:ship_line2;type:varchar(200)" json:"line2,omitempty"`
	City       string `gorm:"column:ship_city;type:varchar(80)" json:"city"`
	State      string `gorm:"column:ship_state;type:varchar(80)" json:"state"`
	PostalCode string `gorm:"column:ship_postal_code;type:varchar(20)" json:"postal_code"`
	Country    string `gorm:"column:ship_country;type:varchar(80)" json:"country"`
}

// Validate checks the required address fields
func (a ShippingAddress) Validate() error {
	if strings.TrimSpace(a.Line1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(a.City) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	return nil
}

// Order is the aggregate root for a customer order
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber      string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	CustomerName     string          `gorm:"type:varchar(120);not null"`
	CustomerEmail    string          `gorm:"type:varchar(200);not null;index"`
	CustomerPhone    string          `gorm:"type:varchar(30)"`
	Shipping         ShippingAddress `gorm:"embedded"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;index"`
	PaymentMethod    PaymentMethod   `gorm:"type:varchar(10);not null"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);not null;index"`
	PaymentReference string          `gorm:"type:varchar(120)"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note             string          `gorm:"type:varchar(500)"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order with item snapshots.
// Online payments must carry the gateway reference and start as PAID;
// cash-on-delivery orders start with payment pending.
func NewOrder(orderNumber, customerName, customerEmail, customerPhone string, shipping ShippingAddress, method PaymentMethod, paymentReference string) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	customerName = strings.TrimSpace(customerName)
	customerEmail = strings.TrimSpace(strings.ToLower(customerEmail))

	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if customerEmail == "" || !strings.Contains(customerEmail, "@") {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "A valid customer email is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method: %s", method))
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	paymentStatus := PaymentStatusPending
	if method == PaymentMethodOnline {
		if strings.TrimSpace(paymentReference) == "" {
			return nil, shared.NewDomainError("INVALID_PAYMENT_REFERENCE", "Online payments require a gateway reference")
		}
		paymentStatus = PaymentStatusPaid
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		CustomerPhone:     strings.TrimSpace(customerPhone),
		Shipping:          shipping,
		Status:            OrderStatusPending,
		PaymentMethod:     method,
		PaymentStatus:     paymentStatus,
		PaymentReference:  strings.TrimSpace(paymentReference),
		TotalAmount:       decimal.Zero,
	}, nil
}

// AddItem appends an item snapshot and recalculates the order total
func (o *Order) AddItem(item *OrderItem) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Items can only be added to pending orders")
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	o.TotalAmount = total
}

// Finalize validates the assembled order and publishes the created event
func (o *Order) Finalize() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return nil
}

// ChangeStatus transitions the order to the target status
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	oldStatus := o.Status
	o.Status = target
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))
	if target == OrderStatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o))
	}
	return nil
}

// Cancel cancels the order if it has not shipped
func (o *Order) Cancel() error {
	return o.ChangeStatus(OrderStatusCancelled)
}

// UpdatePaymentStatus records a payment state change reported by the gateway
func (o *Order) UpdatePaymentStatus(status PaymentStatus, reference string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status: %s", status))
	}
	if o.PaymentStatus == PaymentStatusRefunded {
		return shared.NewDomainError("INVALID_STATE", "Refunded payments cannot change state")
	}
	o.PaymentStatus = status
	if reference != "" {
		o.PaymentReference = reference
	}
	o.IncrementVersion()
	return nil
}

// IsPaid reports whether the order has been paid
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}
