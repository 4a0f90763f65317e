package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

// Builds destination -> 2 restaurants -> orders with items, then deletes from
// the root. Nothing below the root may survive.
func TestDestinationDelete_CascadesToItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	destination := env.seedDestination(t)
	user := env.seedUser(t, "traveler")
	first := env.seedRestaurant(t, destination.DestinationID)
	second := env.seedRestaurant(t, destination.DestinationID)

	for _, restaurant := range []*types.Restaurant{first, second} {
		_, err := env.orders.Create(ctx, &types.OrderDTO{
			RestaurantID: restaurant.RestaurantID,
			UserID:       user.UserID,
			OrderItems: []types.OrderItemDTO{
				{ItemName: "Pizza", Quantity: 2, UnitPrice: money("12.99")},
				{ItemName: "Soda", Quantity: 1, UnitPrice: money("2.50")},
			},
		})
		require.NoError(t, err)
	}
	require.Equal(t, int64(2), env.countRows(t, &types.Order{}))
	require.Equal(t, int64(4), env.countRows(t, &types.OrderItem{}))

	require.NoError(t, env.destinations.Delete(ctx, destination.DestinationID))

	require.Equal(t, int64(0), env.countRows(t, &types.Destination{}))
	require.Equal(t, int64(0), env.countRows(t, &types.Restaurant{}))
	require.Equal(t, int64(0), env.countRows(t, &types.Order{}))
	require.Equal(t, int64(0), env.countRows(t, &types.OrderItem{}))

	// The user placed the orders but is not part of the destination subtree.
	require.Equal(t, int64(1), env.countRows(t, &types.User{}))
}

func TestRestaurantDelete_CascadesOnlyItsOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	destination := env.seedDestination(t)
	user := env.seedUser(t, "regular")
	doomed := env.seedRestaurant(t, destination.DestinationID)
	survivor := env.seedRestaurant(t, destination.DestinationID)

	_, err := env.orders.Create(ctx, &types.OrderDTO{
		RestaurantID: doomed.RestaurantID,
		UserID:       user.UserID,
		OrderItems:   []types.OrderItemDTO{{ItemName: "Pizza", Quantity: 1, UnitPrice: money("12.99")}},
	})
	require.NoError(t, err)
	kept, err := env.orders.Create(ctx, &types.OrderDTO{
		RestaurantID: survivor.RestaurantID,
		UserID:       user.UserID,
		OrderItems:   []types.OrderItemDTO{{ItemName: "Soda", Quantity: 1, UnitPrice: money("2.50")}},
	})
	require.NoError(t, err)

	require.NoError(t, env.restaurants.Delete(ctx, doomed.RestaurantID))

	require.Equal(t, int64(1), env.countRows(t, &types.Restaurant{}))
	require.Equal(t, int64(1), env.countRows(t, &types.Order{}))
	require.Equal(t, int64(1), env.countRows(t, &types.OrderItem{}))
	requireMoney(t, "2.50", env.storedOrder(t, kept.OrderID).TotalAmount)
}

func TestUserDelete_CascadesOrdersAndTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	destination := env.seedDestination(t)
	restaurant := env.seedRestaurant(t, destination.DestinationID)
	doomed := env.seedUser(t, "leaving")
	survivor := env.seedUser(t, "staying")

	_, err := env.orders.Create(ctx, &types.OrderDTO{
		RestaurantID: restaurant.RestaurantID,
		UserID:       doomed.UserID,
		OrderItems:   []types.OrderItemDTO{{ItemName: "Pizza", Quantity: 1, UnitPrice: money("12.99")}},
	})
	require.NoError(t, err)
	_, err = env.orders.Create(ctx, &types.OrderDTO{
		RestaurantID: restaurant.RestaurantID,
		UserID:       survivor.UserID,
		OrderItems:   []types.OrderItemDTO{{ItemName: "Soda", Quantity: 1, UnitPrice: money("2.50")}},
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&types.UserToken{
		UserID:       doomed.UserID,
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, env.users.Delete(ctx, doomed.UserID))

	require.Equal(t, int64(1), env.countRows(t, &types.User{}))
	require.Equal(t, int64(1), env.countRows(t, &types.Order{}))
	require.Equal(t, int64(1), env.countRows(t, &types.OrderItem{}))
	require.Equal(t, int64(0), env.countRows(t, &types.UserToken{}))
}

func TestDestinationDelete_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	require.ErrorIs(t, env.destinations.Delete(context.Background(), 9999), apperr.ErrNotFound)
}
