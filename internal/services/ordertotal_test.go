package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

func TestRecompute_SumsAndRoundsToCents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.seedOrder(t)

	require.NoError(t, env.db.Create([]*types.OrderItem{
		{OrderID: order.OrderID, ItemName: "Espresso", Quantity: 3, UnitPrice: money("1.115")},
		{OrderID: order.OrderID, ItemName: "Pastel", Quantity: 2, UnitPrice: money("2.40")},
	}).Error)

	total, err := env.totals.Recompute(ctx, nil, order.OrderID)
	require.NoError(t, err)
	// 3*1.115 + 2*2.40 = 8.145, rounded half away from zero to 8.15
	requireMoney(t, "8.15", total)
	requireMoney(t, "8.15", env.storedOrder(t, order.OrderID).TotalAmount)
}

func TestRecompute_EmptyItemSetIsZero(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t)

	total, err := env.totals.Recompute(context.Background(), nil, order.OrderID)
	require.NoError(t, err)
	requireMoney(t, "0.00", total)
}

func TestRecompute_MissingOrderIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	total, err := env.totals.Recompute(context.Background(), nil, 9999)
	require.NoError(t, err)
	requireMoney(t, "0.00", total)
	require.Equal(t, int64(0), env.countRows(t, &types.Order{}))
}
