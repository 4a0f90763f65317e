package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/handlers"
	"github.com/travelfoodcms/travelfood-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	DestinationHandler *handlers.DestinationHandler
	RestaurantHandler  *handlers.RestaurantHandler
	UserHandler        *handlers.UserHandler
	OrderHandler       *handlers.OrderHandler
	OrderItemHandler   *handlers.OrderItemHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Public
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)
	api.GET("/destinations", cfg.DestinationHandler.List)
	api.GET("/destinations/:id", cfg.DestinationHandler.Get)
	api.GET("/destinations/:id/restaurants", cfg.DestinationHandler.ListRestaurants)
	api.GET("/restaurants", cfg.RestaurantHandler.List)
	api.GET("/restaurants/:id", cfg.RestaurantHandler.Get)
	api.GET("/restaurants/:id/orders", cfg.RestaurantHandler.ListOrders)
	api.GET("/restaurants/bydestination/:destinationId", cfg.RestaurantHandler.ListByDestination)

	// Authenticated
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)

	protected.POST("/destinations", cfg.DestinationHandler.Create)
	protected.PUT("/destinations/:id", cfg.DestinationHandler.Update)
	protected.DELETE("/destinations/:id", cfg.DestinationHandler.Delete)

	protected.POST("/restaurants", cfg.RestaurantHandler.Create)
	protected.PUT("/restaurants/:id", cfg.RestaurantHandler.Update)
	protected.DELETE("/restaurants/:id", cfg.RestaurantHandler.Delete)

	protected.GET("/users", cfg.UserHandler.List)
	protected.GET("/users/:id", cfg.UserHandler.Get)
	protected.GET("/users/:id/orders", cfg.UserHandler.ListOrders)
	protected.POST("/users", cfg.UserHandler.Create)
	protected.POST("/users/authenticate", cfg.UserHandler.Authenticate)
	protected.PUT("/users/:id", cfg.UserHandler.Update)
	protected.DELETE("/users/:id", cfg.UserHandler.Delete)

	protected.GET("/orders", cfg.OrderHandler.List)
	protected.GET("/orders/:id", cfg.OrderHandler.Get)
	protected.GET("/orders/:id/items", cfg.OrderHandler.ListItems)
	protected.GET("/orders/byuser/:userId", cfg.OrderHandler.ListByUser)
	protected.GET("/orders/byrestaurant/:restaurantId", cfg.OrderHandler.ListByRestaurant)
	protected.POST("/orders", cfg.OrderHandler.Create)
	protected.PUT("/orders/:id", cfg.OrderHandler.Update)
	protected.DELETE("/orders/:id", cfg.OrderHandler.Delete)

	protected.GET("/orderitems", cfg.OrderItemHandler.List)
	protected.GET("/orderitems/:id", cfg.OrderItemHandler.Get)
	protected.GET("/orderitems/byorder/:orderId", cfg.OrderItemHandler.ListByOrder)
	protected.POST("/orderitems", cfg.OrderItemHandler.Create)
	protected.POST("/orderitems/addmultiple", cfg.OrderItemHandler.AddMultiple)
	protected.PUT("/orderitems/:id", cfg.OrderItemHandler.Update)
	protected.DELETE("/orderitems/:id", cfg.OrderItemHandler.Delete)

	return router
}
