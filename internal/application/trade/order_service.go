package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/aurelia/backend/internal/domain/trade"
)

// OrderService handles checkout and order administration.
type OrderService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		events:      events,
		logger:      logger,
	}
}

// Checkout assembles and persists an order in one shot. Local line
// items are snapshotted from the catalog at current prices; remote
// items use the client-supplied snapshot since the platform owns
// their canonical data.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	order, err := trade.NewOrder(
		generateOrderNumber(),
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		trade.ShippingAddress{
			Line1:      req.Shipping.Line1,
			Line2:      req.Shipping.Line2,
			City:       req.Shipping.City,
			State:      req.Shipping.State,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		},
		trade.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		req.PaymentReference,
	)
	if err != nil {
		return nil, err
	}
	order.Note = strings.TrimSpace(req.Note)

	for _, line := range req.Items {
		item, err := s.buildItem(ctx, order.ID, line)
		if err != nil {
			return nil, err
		}
		if err := order.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := order.Finalize(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.TotalAmount.String()),
	)

	return toOrderResponse(order), nil
}

// buildItem turns a checkout line into an order item snapshot.
func (s *OrderService) buildItem(ctx context.Context, orderID uuid.UUID, line CheckoutItemRequest) (*trade.OrderItem, error) {
	switch trade.ItemSource(line.Source) {
	case trade.ItemSourceLocal:
		if line.ProductID == nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Local items require a product ID")
		}
		product, err := s.productRepo.FindByID(ctx, *line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Only %d of %q left in stock", product.Stock, product.Name))
		}
		return trade.NewOrderItem(orderID, trade.ItemSourceLocal, &product.ID, "",
			product.Name, product.Slug, product.PrimaryImage(), line.Size,
			product.Price, line.Quantity)

	case trade.ItemSourceRemote:
		unitPrice := decimal.Zero
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		return trade.NewOrderItem(orderID, trade.ItemSourceRemote, nil, line.RemoteID,
			line.Name, "", line.Image, line.Size, unitPrice, line.Quantity)

	default:
		return nil, shared.NewDomainError("INVALID_SOURCE",
			fmt.Sprintf("Unknown item source: %s", line.Source))
	}
}

// GetByID returns a single order with its items
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByOrderNumber returns a single order by its public number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListByCustomer returns a customer's orders, newest first
func (s *OrderService) ListByCustomer(ctx context.Context, email string, page, pageSize int) ([]OrderResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByCustomerEmail(ctx, email, filter)
	if err != nil {
		return nil, err
	}

	return toOrderResponses(orders), nil
}

// List returns a page of orders matching the admin filters
func (s *OrderService) List(ctx context.Context, req ListOrdersRequest) (*shared.Paginated[OrderResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	if req.Status != "" {
		filter.Filters["status"] = strings.ToUpper(req.Status)
	}
	if req.PaymentStatus != "" {
		filter.Filters["payment_status"] = strings.ToUpper(req.PaymentStatus)
	}
	if req.PaymentMethod != "" {
		filter.Filters["payment_method"] = strings.ToUpper(req.PaymentMethod)
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(toOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ChangeStatus transitions an order through its lifecycle
func (s *OrderService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(trade.OrderStatus(strings.ToUpper(req.Status))); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return toOrderResponse(order), nil
}

// Cancel cancels an order that has not shipped
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.ChangeStatus(ctx, id, ChangeStatusRequest{Status: string(trade.OrderStatusCancelled)})
}

// UpdatePayment records a gateway-reported payment change
func (s *OrderService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.UpdatePaymentStatus(trade.PaymentStatus(strings.ToUpper(req.Status)), req.Reference); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return toOrderResponse(order), nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
	order.ClearDomainEvents()
}

func toOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *toOrderResponse(&orders[i]))
	}
	return out
}

// generateOrderNumber builds a short, human-quotable order number.
// Uniqueness is enforced by the database index; the random suffix
// makes collisions within a day vanishingly unlikely.
func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("AUR-%s-%s", time.Now().Format("20060102"), suffix)
}
