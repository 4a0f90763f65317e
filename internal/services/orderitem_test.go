package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

func (env *testEnv) seedOrder(t *testing.T) *types.Order {
	t.Helper()
	_, restaurant, user := env.seedOrderGraph(t)
	order, err := env.orders.Create(context.Background(), &types.OrderDTO{
		RestaurantID: restaurant.RestaurantID,
		UserID:       user.UserID,
	})
	require.NoError(t, err)
	return order
}

func TestOrderItemCreate_RecomputesParentTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.seedOrder(t)

	item, err := env.orderItems.Create(ctx, &types.OrderItemDTO{
		OrderID:   order.OrderID,
		ItemName:  "Pizza",
		Quantity:  2,
		UnitPrice: money("12.99"),
	})
	require.NoError(t, err)
	require.NotZero(t, item.ItemID)
	requireMoney(t, "25.98", env.storedOrder(t, order.OrderID).TotalAmount)
}

func TestOrderItemCreate_RejectsUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orderItems.Create(context.Background(), &types.OrderItemDTO{
		OrderID:   9999,
		ItemName:  "Pizza",
		Quantity:  1,
		UnitPrice: money("12.99"),
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindInvalidOrder, ve.Kind)
	require.Equal(t, int64(0), env.countRows(t, &types.OrderItem{}))
}

func TestOrderItemUpdate_ReparentRecomputesBothOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.seedOrder(t)
	second := env.seedOrder(t)

	item, err := env.orderItems.Create(ctx, &types.OrderItemDTO{
		OrderID:   first.OrderID,
		ItemName:  "Pizza",
		Quantity:  1,
		UnitPrice: money("12.99"),
	})
	require.NoError(t, err)

	err = env.orderItems.Update(ctx, item.ItemID, &types.OrderItemDTO{
		OrderID:   second.OrderID,
		ItemName:  "Pizza",
		Quantity:  1,
		UnitPrice: money("12.99"),
	})
	require.NoError(t, err)

	requireMoney(t, "0.00", env.storedOrder(t, first.OrderID).TotalAmount)
	requireMoney(t, "12.99", env.storedOrder(t, second.OrderID).TotalAmount)
}

func TestOrderItemUpdate_UnknownItemIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t)

	err := env.orderItems.Update(context.Background(), 9999, &types.OrderItemDTO{
		OrderID:   order.OrderID,
		ItemName:  "Pizza",
		Quantity:  1,
		UnitPrice: money("12.99"),
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderItemAddMultiple_SingleRecompute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.seedOrder(t)

	counter := &recomputeCounter{inner: env.totals}
	orderItems := NewOrderItemService(env.db, logger.NewNop(), env.orderRepo, env.orderItemRepo, counter)

	items, err := orderItems.AddMultiple(ctx, order.OrderID, []types.OrderItemDTO{
		{ItemName: "Pizza", Quantity: 2, UnitPrice: money("12.99")},
		{ItemName: "Soda", Quantity: 1, UnitPrice: money("2.50")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.calls)
	require.Len(t, items, 2)
	for _, item := range items {
		require.NotZero(t, item.ItemID)
		require.Equal(t, order.OrderID, item.OrderID)
	}
	requireMoney(t, "28.48", env.storedOrder(t, order.OrderID).TotalAmount)
}

func TestOrderItemAddMultiple_UnknownOrderLeavesNothing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orderItems.AddMultiple(context.Background(), 9999, []types.OrderItemDTO{
		{ItemName: "Pizza", Quantity: 1, UnitPrice: money("12.99")},
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindInvalidOrder, ve.Kind)
	require.Equal(t, int64(0), env.countRows(t, &types.OrderItem{}))
}

func TestOrderItemDelete_RecomputesFormerParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.seedOrder(t)

	item, err := env.orderItems.Create(ctx, &types.OrderItemDTO{
		OrderID:   order.OrderID,
		ItemName:  "Pizza",
		Quantity:  3,
		UnitPrice: money("10.00"),
	})
	require.NoError(t, err)
	requireMoney(t, "30.00", env.storedOrder(t, order.OrderID).TotalAmount)

	require.NoError(t, env.orderItems.Delete(ctx, item.ItemID))
	requireMoney(t, "0.00", env.storedOrder(t, order.OrderID).TotalAmount)

	require.ErrorIs(t, env.orderItems.Delete(ctx, item.ItemID), apperr.ErrNotFound)
}
