package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/aurelia/backend/internal/domain/trade"
)

// OrderCreatedHandler deducts local stock when a checkout completes.
// Remote line items belong to the platform and are skipped.
type OrderCreatedHandler struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderCreatedHandler creates a handler for order created events
func NewOrderCreatedHandler(productRepo catalog.ProductRepository, logger *zap.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderCreatedHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderCreated}
}

// Handle deducts stock for every local line item on the order. Items
// are processed independently: a missing product is logged and skipped
// so the rest of the order still settles.
func (h *OrderCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*trade.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeOrderCreated, event.EventType())
	}

	for _, item := range created.Items {
		if item.Source != trade.ItemSourceLocal || item.ProductID == nil {
			continue
		}

		product, err := h.productRepo.FindByID(ctx, *item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				h.logger.Warn("ordered product no longer exists",
					zap.String("order_number", created.OrderNumber),
					zap.String("product_id", item.ProductID.String()),
				)
				continue
			}
			return err
		}

		if err := product.DeductStock(item.Quantity); err != nil {
			// Checkout validated stock before creating the order;
			// getting here means a concurrent order won the race.
			h.logger.Warn("stock deduction failed",
				zap.String("order_number", created.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}

		if err := h.productRepo.Save(ctx, product); err != nil {
			return err
		}

		h.logger.Info("stock deducted",
			zap.String("order_number", created.OrderNumber),
			zap.String("product_id", item.ProductID.String()),
			zap.Int("quantity", item.Quantity),
			zap.Int("remaining", product.Stock),
		)
	}

	return nil
}
