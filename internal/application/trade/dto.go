package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurelia/backend/internal/domain/trade"
)

// CheckoutItemRequest is one line of a checkout. Local items reference
// a catalog product; remote items carry the platform variant ID plus a
// client-supplied snapshot (the platform owns their canonical data).
type CheckoutItemRequest struct {
	Source    string           `json:"source" binding:"required,oneof=local remote"`
	ProductID *uuid.UUID       `json:"product_id"`
	RemoteID  string           `json:"remote_id"`
	Name      string           `json:"name"`
	Image     string           `json:"image"`
	Size      string           `json:"size" binding:"max=40"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
}

// ShippingAddressRequest is the delivery address captured at checkout
type ShippingAddressRequest struct {
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=80"`
	State      string `json:"state" binding:"max=80"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=80"`
}

// CheckoutRequest creates an order in one shot
type CheckoutRequest struct {
	CustomerName     string                 `json:"customer_name" binding:"required,max=120"`
	CustomerEmail    string                 `json:"customer_email" binding:"required,email"`
	CustomerPhone    string                 `json:"customer_phone" binding:"max=30"`
	Shipping         ShippingAddressRequest `json:"shipping" binding:"required"`
	PaymentMethod    string                 `json:"payment_method" binding:"required,oneof=COD ONLINE"`
	PaymentReference string                 `json:"payment_reference" binding:"max=120"`
	Note             string                 `json:"note" binding:"max=500"`
	Items            []CheckoutItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// ChangeStatusRequest moves an order through its lifecycle
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentRequest records a gateway-reported payment change
type UpdatePaymentRequest struct {
	Status    string `json:"status" binding:"required"`
	Reference string `json:"reference" binding:"max=120"`
}

// ListOrdersRequest carries admin list filters
type ListOrdersRequest struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	PaymentMethod string `form:"payment_method"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	RemoteID  string          `json:"remote_id,omitempty"`
	Source    string          `json:"source"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug,omitempty"`
	Image     string          `json:"image,omitempty"`
	Size      string          `json:"size,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID             `json:"id"`
	OrderNumber      string                `json:"order_number"`
	CustomerName     string                `json:"customer_name"`
	CustomerEmail    string                `json:"customer_email"`
	CustomerPhone    string                `json:"customer_phone,omitempty"`
	Shipping         trade.ShippingAddress `json:"shipping"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	PaymentStatus    string                `json:"payment_status"`
	PaymentReference string                `json:"payment_reference,omitempty"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	Note             string                `json:"note,omitempty"`
	Items            []OrderItemResponse   `json:"items"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func toOrderResponse(o *trade.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			RemoteID:  item.RemoteID,
			Source:    string(item.Source),
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Size:      item.Size,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}

	return &OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		Shipping:         o.Shipping,
		Status:           string(o.Status),
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentReference: o.PaymentReference,
		TotalAmount:      o.TotalAmount,
		Note:             o.Note,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
