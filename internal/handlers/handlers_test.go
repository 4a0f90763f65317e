package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/requestdata"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

var handlerDBSeq int64

const testAdminHeader = "X-Test-Admin"

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type handlerEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// newHandlerEnv wires the real service stack over an in-memory store behind a
// router that mirrors the production route table. Identity is injected from a
// test header instead of a bearer token.
func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertest_%d?mode=memory&cache=shared", atomic.AddInt64(&handlerDBSeq, 1))
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
	destinationRepo := repos.NewDestinationRepo(db, log)
	restaurantRepo := repos.NewRestaurantRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)
	orderItemRepo := repos.NewOrderItemRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)

	totals := services.NewOrderTotalService(db, log, orderRepo, orderItemRepo)
	cascade := services.NewCascadeService(log, destinationRepo, restaurantRepo, userRepo, orderRepo, orderItemRepo, userTokenRepo)
	destinationService := services.NewDestinationService(db, log, destinationRepo, restaurantRepo, cascade)
	restaurantService := services.NewRestaurantService(db, log, destinationRepo, restaurantRepo, orderRepo, cascade)
	userService := services.NewUserService(db, log, userRepo, orderRepo, cascade)
	orderService := services.NewOrderService(db, log, orderRepo, orderItemRepo, restaurantRepo, userRepo, totals, cascade)
	orderItemService := services.NewOrderItemService(db, log, orderRepo, orderItemRepo, totals)

	destinationHandler := NewDestinationHandler(log, destinationService)
	restaurantHandler := NewRestaurantHandler(log, restaurantService)
	userHandler := NewUserHandler(log, userService)
	orderHandler := NewOrderHandler(log, orderService)
	orderItemHandler := NewOrderItemHandler(log, orderItemService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		rd := &requestdata.RequestData{
			UserID:  1,
			IsAdmin: c.GetHeader(testAdminHeader) == "true",
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	})

	api := router.Group("/api")
	api.GET("/destinations", destinationHandler.List)
	api.GET("/destinations/:id", destinationHandler.Get)
	api.GET("/destinations/:id/restaurants", destinationHandler.ListRestaurants)
	api.POST("/destinations", destinationHandler.Create)
	api.PUT("/destinations/:id", destinationHandler.Update)
	api.DELETE("/destinations/:id", destinationHandler.Delete)

	api.GET("/restaurants", restaurantHandler.List)
	api.GET("/restaurants/:id", restaurantHandler.Get)
	api.GET("/restaurants/bydestination/:destinationId", restaurantHandler.ListByDestination)
	api.POST("/restaurants", restaurantHandler.Create)
	api.PUT("/restaurants/:id", restaurantHandler.Update)
	api.DELETE("/restaurants/:id", restaurantHandler.Delete)

	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.POST("/users", userHandler.Create)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/items", orderHandler.ListItems)
	api.GET("/orders/byuser/:userId", orderHandler.ListByUser)
	api.POST("/orders", orderHandler.Create)
	api.PUT("/orders/:id", orderHandler.Update)
	api.DELETE("/orders/:id", orderHandler.Delete)

	api.GET("/orderitems/:id", orderItemHandler.Get)
	api.POST("/orderitems", orderItemHandler.Create)
	api.POST("/orderitems/addmultiple", orderItemHandler.AddMultiple)
	api.PUT("/orderitems/:id", orderItemHandler.Update)
	api.DELETE("/orderitems/:id", orderItemHandler.Delete)

	return &handlerEnv{db: db, router: router}
}

func (env *handlerEnv) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(testAdminHeader, "true")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *handlerEnv) seedGraph(t *testing.T) (*types.Destination, *types.Restaurant, *types.User) {
	t.Helper()
	destination := &types.Destination{Name: "Lisbon", Location: "Portugal", Date: time.Now()}
	require.NoError(t, env.db.Create(destination).Error)
	restaurant := &types.Restaurant{DestinationID: destination.DestinationID, Name: "Ramiro", Date: time.Now()}
	require.NoError(t, env.db.Create(restaurant).Error)
	user := &types.User{Username: "alex", Email: "alex@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)
	return destination, restaurant, user
}
