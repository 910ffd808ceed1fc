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

// OrderCancelledHandler returns stock claimed by a cancelled order.
// The compensation for OrderCreatedHandler: whatever that handler
// deducted, this one puts back.
type OrderCancelledHandler struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderCancelledHandler creates a handler for order cancelled events
func NewOrderCancelledHandler(productRepo catalog.ProductRepository, logger *zap.Logger) *OrderCancelledHandler {
	return &OrderCancelledHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderCancelledHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderCancelled}
}

// Handle restores stock for every local line item on the cancelled
// order. A product deleted since the order was placed is logged and
// skipped; there is nothing left to restore to.
func (h *OrderCancelledHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(*trade.OrderCancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeOrderCancelled, event.EventType())
	}

	for _, item := range cancelled.Items {
		if item.Source != trade.ItemSourceLocal || item.ProductID == nil {
			continue
		}

		product, err := h.productRepo.FindByID(ctx, *item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				h.logger.Warn("cancelled product no longer exists",
					zap.String("order_number", cancelled.OrderNumber),
					zap.String("product_id", item.ProductID.String()),
				)
				continue
			}
			return err
		}

		if err := product.RestoreStock(item.Quantity); err != nil {
			h.logger.Warn("stock restore failed",
				zap.String("order_number", cancelled.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}

		if err := h.productRepo.Save(ctx, product); err != nil {
			return err
		}

		h.logger.Info("stock restored",
			zap.String("order_number", cancelled.OrderNumber),
			zap.String("product_id", item.ProductID.String()),
			zap.Int("quantity", item.Quantity),
			zap.Int("stock", product.Stock),
		)
	}

	return nil
}
