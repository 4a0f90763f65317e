package main

import (
	"fmt"
	"os"
	"time"

	"github.com/travelfoodcms/travelfood-backend/internal/db"
	"github.com/travelfoodcms/travelfood-backend/internal/handlers"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/middleware"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/server"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	destinationRepo := repos.NewDestinationRepo(thePG, log)
	restaurantRepo := repos.NewRestaurantRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	orderItemRepo := repos.NewOrderItemRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	totalService := services.NewOrderTotalService(thePG, log, orderRepo, orderItemRepo)
	cascadeService := services.NewCascadeService(log, destinationRepo, restaurantRepo, userRepo, orderRepo, orderItemRepo, userTokenRepo)
	destinationService := services.NewDestinationService(thePG, log, destinationRepo, restaurantRepo, cascadeService)
	restaurantService := services.NewRestaurantService(thePG, log, destinationRepo, restaurantRepo, orderRepo, cascadeService)
	userService := services.NewUserService(thePG, log, userRepo, orderRepo, cascadeService)
	orderService := services.NewOrderService(thePG, log, orderRepo, orderItemRepo, restaurantRepo, userRepo, totalService, cascadeService)
	orderItemService := services.NewOrderItemService(thePG, log, orderRepo, orderItemRepo, totalService)
	authService := services.NewAuthService(thePG, log, userService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	destinationHandler := handlers.NewDestinationHandler(log, destinationService)
	restaurantHandler := handlers.NewRestaurantHandler(log, restaurantService)
	userHandler := handlers.NewUserHandler(log, userService)
	orderHandler := handlers.NewOrderHandler(log, orderService)
	orderItemHandler := handlers.NewOrderItemHandler(log, orderItemService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		DestinationHandler: destinationHandler,
		RestaurantHandler:  restaurantHandler,
		UserHandler:        userHandler,
		OrderHandler:       orderHandler,
		OrderItemHandler:   orderItemHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
