package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/trade"
)

func cancelEventWithItems(items ...trade.OrderCreatedItem) *trade.OrderCancelledEvent {
	evt := &trade.OrderCancelledEvent{
		OrderID:     uuid.New(),
		OrderNumber: "AUR-20260829-0002",
		Items:       items,
	}
	evt.Type = trade.EventTypeOrderCancelled
	evt.ID = uuid.New()
	return evt
}

func TestOrderCancelledHandler_RestoresLocalStock(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(t, repo, "gold-band", 3)

	handler := NewOrderCancelledHandler(repo, zap.NewNop())
	evt := cancelEventWithItems(trade.OrderCreatedItem{
		ProductID: &p.ID,
		Source:    trade.ItemSourceLocal,
		Quantity:  2,
	})

	require.NoError(t, handler.Handle(context.Background(), evt))

	saved, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Stock)
}

func TestOrderCancelledHandler_UndoesDeduction(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(t, repo, "gold-band", 5)
	ctx := context.Background()

	item := trade.OrderCreatedItem{
		ProductID: &p.ID,
		Source:    trade.ItemSourceLocal,
		Quantity:  2,
	}

	require.NoError(t, NewOrderCreatedHandler(repo, zap.NewNop()).
		Handle(ctx, orderEventWithItems(item)))
	require.NoError(t, NewOrderCancelledHandler(repo, zap.NewNop()).
		Handle(ctx, cancelEventWithItems(item)))

	saved, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Stock)
}

func TestOrderCancelledHandler_SkipsRemoteItems(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(t, repo, "gold-band", 3)

	handler := NewOrderCancelledHandler(repo, zap.NewNop())
	evt := cancelEventWithItems(trade.OrderCreatedItem{
		RemoteID: "gid://platform/ProductVariant/99",
		Source:   trade.ItemSourceRemote,
		Quantity: 2,
	})

	require.NoError(t, handler.Handle(context.Background(), evt))

	saved, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Stock)
}

func TestOrderCancelledHandler_MissingProductIsSkipped(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(t, repo, "gold-band", 3)
	missing := uuid.New()

	handler := NewOrderCancelledHandler(repo, zap.NewNop())
	evt := cancelEventWithItems(
		trade.OrderCreatedItem{ProductID: &missing, Source: trade.ItemSourceLocal, Quantity: 1},
		trade.OrderCreatedItem{ProductID: &p.ID, Source: trade.ItemSourceLocal, Quantity: 1},
	)

	require.NoError(t, handler.Handle(context.Background(), evt))

	saved, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Stock)
}

func TestOrderCancelledHandler_RejectsWrongEventType(t *testing.T) {
	handler := NewOrderCancelledHandler(newFakeProductRepo(), zap.NewNop())

	p, err := catalog.NewProduct("ring", "Ring", catalog.CategoryRings, decimal.NewFromInt(100))
	require.NoError(t, err)

	err = handler.Handle(context.Background(), catalog.NewProductCreatedEvent(p))
	assert.Error(t, err)
}
