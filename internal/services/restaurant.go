package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type RestaurantService interface {
	Create(ctx context.Context, req *types.RestaurantDTO) (*types.Restaurant, error)
	Update(ctx context.Context, restaurantID uint, req *types.RestaurantDTO) error
	Delete(ctx context.Context, restaurantID uint) error
	GetByID(ctx context.Context, restaurantID uint) (*types.Restaurant, []*types.Order, error)
	List(ctx context.Context) ([]*types.Restaurant, error)
	ListByDestination(ctx context.Context, destinationID uint) ([]*types.Restaurant, error)
	ListOrders(ctx context.Context, restaurantID uint) ([]*types.Order, error)
}

type restaurantService struct {
	db              *gorm.DB
	log             *logger.Logger
	destinationRepo repos.DestinationRepo
	restaurantRepo  repos.RestaurantRepo
	orderRepo       repos.OrderRepo
	cascade         CascadeService
}

func NewRestaurantService(
	db *gorm.DB,
	baseLog *logger.Logger,
	destinationRepo repos.DestinationRepo,
	restaurantRepo repos.RestaurantRepo,
	orderRepo repos.OrderRepo,
	cascade CascadeService,
) RestaurantService {
	return &restaurantService{
		db:              db,
		log:             baseLog.With("service", "RestaurantService"),
		destinationRepo: destinationRepo,
		restaurantRepo:  restaurantRepo,
		orderRepo:       orderRepo,
		cascade:         cascade,
	}
}

func (rs *restaurantService) requireDestination(ctx context.Context, tx *gorm.DB, destinationID uint) error {
	exists, err := rs.destinationRepo.Exists(ctx, tx, destinationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NewValidation(apperr.KindInvalidDestination, "Invalid Destination ID")
	}
	return nil
}

func (rs *restaurantService) Create(ctx context.Context, req *types.RestaurantDTO) (*types.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.NewValidation(apperr.KindMissingField, "name is required")
	}
	var restaurant *types.Restaurant
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.requireDestination(ctx, tx, req.DestinationID); err != nil {
			return err
		}
		restaurant = &types.Restaurant{
			DestinationID:  req.DestinationID,
			Name:           req.Name,
			CuisineType:    req.CuisineType,
			PriceRange:     req.PriceRange,
			ContactInfo:    req.ContactInfo,
			OperatingHours: req.OperatingHours,
			Address:        req.Address,
			ImageURL:       req.ImageURL,
			Date:           time.Now(),
		}
		return rs.restaurantRepo.Create(ctx, tx, restaurant)
	})
	if err != nil {
		return nil, wrapStore("create restaurant", err)
	}
	return restaurant, nil
}

func (rs *restaurantService) Update(ctx context.Context, restaurantID uint, req *types.RestaurantDTO) error {
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant, err := rs.restaurantRepo.GetByID(ctx, tx, restaurantID)
		if err != nil {
			return err
		}
		if restaurant == nil {
			return apperr.ErrNotFound
		}
		if err := rs.requireDestination(ctx, tx, req.DestinationID); err != nil {
			return err
		}
		restaurant.DestinationID = req.DestinationID
		restaurant.Name = req.Name
		restaurant.CuisineType = req.CuisineType
		restaurant.PriceRange = req.PriceRange
		restaurant.ContactInfo = req.ContactInfo
		restaurant.OperatingHours = req.OperatingHours
		restaurant.Address = req.Address
		restaurant.ImageURL = req.ImageURL
		return rs.restaurantRepo.Update(ctx, tx, restaurant)
	})
	return wrapStore("update restaurant", err)
}

func (rs *restaurantService) Delete(ctx context.Context, restaurantID uint) error {
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.restaurantRepo.Exists(ctx, tx, restaurantID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrNotFound
		}
		return rs.cascade.DeleteRestaurant(ctx, tx, restaurantID)
	})
	return wrapStore("delete restaurant", err)
}

func (rs *restaurantService) GetByID(ctx context.Context, restaurantID uint) (*types.Restaurant, []*types.Order, error) {
	restaurant, err := rs.restaurantRepo.GetByID(ctx, nil, restaurantID)
	if err != nil {
		return nil, nil, wrapStore("get restaurant", err)
	}
	if restaurant == nil {
		return nil, nil, apperr.ErrNotFound
	}
	orders, err := rs.orderRepo.ListByRestaurantID(ctx, nil, restaurantID)
	if err != nil {
		return nil, nil, wrapStore("get restaurant", err)
	}
	return restaurant, orders, nil
}

func (rs *restaurantService) List(ctx context.Context) ([]*types.Restaurant, error) {
	restaurants, err := rs.restaurantRepo.List(ctx, nil)
	if err != nil {
		return nil, wrapStore("list restaurants", err)
	}
	return restaurants, nil
}

func (rs *restaurantService) ListByDestination(ctx context.Context, destinationID uint) ([]*types.Restaurant, error) {
	exists, err := rs.destinationRepo.Exists(ctx, nil, destinationID)
	if err != nil {
		return nil, wrapStore("list restaurants by destination", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	restaurants, err := rs.restaurantRepo.ListByDestinationID(ctx, nil, destinationID)
	if err != nil {
		return nil, wrapStore("list restaurants by destination", err)
	}
	return restaurants, nil
}

func (rs *restaurantService) ListOrders(ctx context.Context, restaurantID uint) ([]*types.Order, error) {
	exists, err := rs.restaurantRepo.Exists(ctx, nil, restaurantID)
	if err != nil {
		return nil, wrapStore("list restaurant orders", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	orders, err := rs.orderRepo.ListByRestaurantID(ctx, nil, restaurantID)
	if err != nil {
		return nil, wrapStore("list restaurant orders", err)
	}
	return orders, nil
}
