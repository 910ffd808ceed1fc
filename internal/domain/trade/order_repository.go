package trade

import (
	"context"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order with its items by order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByCustomerEmail finds a customer's orders, newest first
	FindByCustomerEmail(ctx context.Context, email string, filter shared.Filter) ([]Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists an order and its items (create or update)
	Save(ctx context.Context, order *Order) error
}
