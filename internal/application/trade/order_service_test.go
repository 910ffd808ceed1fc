package trade

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/aurelia/backend/internal/domain/trade"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*trade.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*trade.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByCustomerEmail(_ context.Context, email string, _ shared.Filter) ([]trade.Order, error) {
	out := make([]trade.Order, 0)
	for _, o := range r.orders {
		if o.CustomerEmail == strings.ToLower(email) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Order, error) {
	out := make([]trade.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *trade.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(context.Context, string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(context.Context, shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindFeatured(context.Context, int) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (r *fakeProductRepo) ExistsBySlug(context.Context, string) (bool, error)  { return false, nil }

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(context.Context, uuid.UUID) error { return nil }

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func setup(t *testing.T) (*OrderService, *fakeProductRepo, *fakeOrderRepo, *capturingPublisher) {
	t.Helper()
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	publisher := &capturingPublisher{}
	svc := NewOrderService(orders, products, publisher, zap.NewNop())
	return svc, products, orders, publisher
}

func seedProduct(t *testing.T, repo *fakeProductRepo, slug string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(slug, slug, catalog.CategoryRings, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, p.SetStock(stock))
	p.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func validCheckout(productID uuid.UUID) CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Priya Sharma",
		CustomerEmail: "Priya@Example.com",
		CustomerPhone: "+91 98000 00000",
		Shipping: ShippingAddressRequest{
			Line1:      "12 Residency Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560025",
			Country:    "India",
		},
		PaymentMethod: "COD",
		Items: []CheckoutItemRequest{
			{Source: "local", ProductID: &productID, Quantity: 2},
		},
	}
}

func TestOrderService_CheckoutCOD(t *testing.T) {
	svc, products, orders, publisher := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	resp, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.OrderNumber, "AUR-"))
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "PENDING", resp.PaymentStatus)
	assert.Equal(t, "priya@example.com", resp.CustomerEmail)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(3000)))
	require.Len(t, resp.Items, 1)
	// Snapshot uses catalog data, not client input.
	assert.Equal(t, "gold-band", resp.Items[0].Name)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(1500)))

	assert.Len(t, orders.orders, 1)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, trade.EventTypeOrderCreated, publisher.events[0].EventType())
}

func TestOrderService_CheckoutOnlineRequiresReference(t *testing.T) {
	svc, products, _, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	req := validCheckout(p.ID)
	req.PaymentMethod = "ONLINE"

	_, err := svc.Checkout(context.Background(), req)
	require.Error(t, err)

	req.PaymentReference = "pay_Nxa92Kd81"
	resp, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
	assert.Equal(t, "pay_Nxa92Kd81", resp.PaymentReference)
}

func TestOrderService_CheckoutInsufficientStock(t *testing.T) {
	svc, products, orders, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 1)

	_, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Empty(t, orders.orders)
}

func TestOrderService_CheckoutUnknownProduct(t *testing.T) {
	svc, _, _, _ := setup(t)

	_, err := svc.Checkout(context.Background(), validCheckout(uuid.New()))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_CheckoutRemoteItem(t *testing.T) {
	svc, _, _, _ := setup(t)

	price := decimal.NewFromInt(2400)
	req := CheckoutRequest{
		CustomerName:  "Priya Sharma",
		CustomerEmail: "priya@example.com",
		Shipping: ShippingAddressRequest{
			Line1:      "12 Residency Road",
			City:       "Bengaluru",
			PostalCode: "560025",
		},
		PaymentMethod: "COD",
		Items: []CheckoutItemRequest{
			{
				Source:    "remote",
				RemoteID:  "gid://platform/ProductVariant/42",
				Name:      "Opal Pendant",
				UnitPrice: &price,
				Quantity:  1,
			},
		},
	}

	resp, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "remote", resp.Items[0].Source)
	assert.True(t, resp.TotalAmount.Equal(price))
}

func TestOrderService_ChangeStatusFlow(t *testing.T) {
	svc, products, _, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	created, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	ctx := context.Background()
	resp, err := svc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	// Skipping shipped is rejected.
	_, err = svc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "DELIVERED"})
	require.Error(t, err)

	resp, err = svc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "SHIPPED"})
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", resp.Status)
}

func TestOrderService_CancelPendingOrder(t *testing.T) {
	svc, products, _, publisher := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	created, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	resp, err := svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)

	// The cancellation publishes the release event stock compensation
	// listens for.
	types := make([]string, 0, len(publisher.events))
	for _, evt := range publisher.events {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, trade.EventTypeOrderCancelled)
}

func TestOrderService_UpdatePayment(t *testing.T) {
	svc, products, _, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	created, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	resp, err := svc.UpdatePayment(context.Background(), created.ID, UpdatePaymentRequest{
		Status:    "paid",
		Reference: "pay_upi_881",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
	assert.Equal(t, "pay_upi_881", resp.PaymentReference)
}

func TestOrderService_ListByCustomer(t *testing.T) {
	svc, products, _, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	_, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	orders, err := svc.ListByCustomer(context.Background(), "PRIYA@example.com", 0, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = svc.ListByCustomer(context.Background(), "other@example.com", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_GetByOrderNumber(t *testing.T) {
	svc, products, _, _ := setup(t)
	p := seedProduct(t, products, "gold-band", 1500, 5)

	created, err := svc.Checkout(context.Background(), validCheckout(p.ID))
	require.NoError(t, err)

	resp, err := svc.GetByOrderNumber(context.Background(), created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.GetByOrderNumber(context.Background(), "AUR-NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
