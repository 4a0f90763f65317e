package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

func TestDestinationCreate_RequiresNameAndLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.destinations.Create(ctx, &types.DestinationDTO{Name: "  ", Location: "Portugal"})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindMissingField, ve.Kind)

	destination, err := env.destinations.Create(ctx, &types.DestinationDTO{Name: "Lisbon", Location: "Portugal"})
	require.NoError(t, err)
	require.NotZero(t, destination.DestinationID)
	require.False(t, destination.Date.IsZero())
}

func TestDestinationGetByID_IncludesRestaurants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	destination := env.seedDestination(t)
	env.seedRestaurant(t, destination.DestinationID)
	env.seedRestaurant(t, destination.DestinationID)

	got, restaurants, err := env.destinations.GetByID(ctx, destination.DestinationID)
	require.NoError(t, err)
	require.Equal(t, destination.DestinationID, got.DestinationID)
	require.Len(t, restaurants, 2)

	_, _, err = env.destinations.GetByID(ctx, 9999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRestaurantCreate_RejectsUnknownDestination(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.restaurants.Create(context.Background(), &types.RestaurantDTO{
		DestinationID: 9999,
		Name:          "Nowhere Grill",
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindInvalidDestination, ve.Kind)
	require.Equal(t, int64(0), env.countRows(t, &types.Restaurant{}))
}

func TestRestaurantUpdate_RevalidatesDestination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	destination := env.seedDestination(t)
	restaurant := env.seedRestaurant(t, destination.DestinationID)

	err := env.restaurants.Update(ctx, restaurant.RestaurantID, &types.RestaurantDTO{
		DestinationID: 9999,
		Name:          restaurant.Name,
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindInvalidDestination, ve.Kind)
}

func TestRestaurantListByDestination_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.restaurants.ListByDestination(context.Background(), 9999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
