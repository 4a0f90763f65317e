package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

var testDBSeq int64

type testEnv struct {
	db *gorm.DB

	destinationRepo repos.DestinationRepo
	restaurantRepo  repos.RestaurantRepo
	userRepo        repos.UserRepo
	orderRepo       repos.OrderRepo
	orderItemRepo   repos.OrderItemRepo
	userTokenRepo   repos.UserTokenRepo

	totals       OrderTotalService
	cascade      CascadeService
	destinations DestinationService
	restaurants  RestaurantService
	users        UserService
	orders       OrderService
	orderItems   OrderItemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Destination{},
		&types.Restaurant{},
		&types.Order{},
		&types.OrderItem{},
	))

	log := logger.NewNop()
	env := &testEnv{
		db:              db,
		destinationRepo: repos.NewDestinationRepo(db, log),
		restaurantRepo:  repos.NewRestaurantRepo(db, log),
		userRepo:        repos.NewUserRepo(db, log),
		orderRepo:       repos.NewOrderRepo(db, log),
		orderItemRepo:   repos.NewOrderItemRepo(db, log),
		userTokenRepo:   repos.NewUserTokenRepo(db, log),
	}
	env.totals = NewOrderTotalService(db, log, env.orderRepo, env.orderItemRepo)
	env.cascade = NewCascadeService(log, env.destinationRepo, env.restaurantRepo, env.userRepo, env.orderRepo, env.orderItemRepo, env.userTokenRepo)
	env.destinations = NewDestinationService(db, log, env.destinationRepo, env.restaurantRepo, env.cascade)
	env.restaurants = NewRestaurantService(db, log, env.destinationRepo, env.restaurantRepo, env.orderRepo, env.cascade)
	env.users = NewUserService(db, log, env.userRepo, env.orderRepo, env.cascade)
	env.orders = NewOrderService(db, log, env.orderRepo, env.orderItemRepo, env.restaurantRepo, env.userRepo, env.totals, env.cascade)
	env.orderItems = NewOrderItemService(db, log, env.orderRepo, env.orderItemRepo, env.totals)
	return env
}

func (env *testEnv) seedDestination(t *testing.T) *types.Destination {
	t.Helper()
	destination := &types.Destination{
		Name:     "Lisbon",
		Location: "Portugal",
		Date:     time.Now(),
	}
	require.NoError(t, env.db.Create(destination).Error)
	return destination
}

func (env *testEnv) seedRestaurant(t *testing.T, destinationID uint) *types.Restaurant {
	t.Helper()
	restaurant := &types.Restaurant{
		DestinationID: destinationID,
		Name:          "Cervejaria Ramiro",
		CuisineType:   "Seafood",
		Date:          time.Now(),
	}
	require.NoError(t, env.db.Create(restaurant).Error)
	return restaurant
}

func (env *testEnv) seedUser(t *testing.T, username string) *types.User {
	t.Helper()
	user := &types.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) seedOrderGraph(t *testing.T) (*types.Destination, *types.Restaurant, *types.User) {
	t.Helper()
	destination := env.seedDestination(t)
	restaurant := env.seedRestaurant(t, destination.DestinationID)
	user := env.seedUser(t, fmt.Sprintf("diner%d", atomic.AddInt64(&testDBSeq, 1)))
	return destination, restaurant, user
}

func (env *testEnv) storedOrder(t *testing.T, orderID uint) *types.Order {
	t.Helper()
	order, err := env.orderRepo.GetByID(context.Background(), nil, orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	return order
}

func (env *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

// recomputeCounter wraps the real recalculation engine and counts how often
// a mutation path invokes it.
type recomputeCounter struct {
	inner OrderTotalService
	calls int
}

func (rc *recomputeCounter) Recompute(ctx context.Context, tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	rc.calls++
	return rc.inner.Recompute(ctx, tx, orderID)
}

func requireMoney(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual.String())
}
