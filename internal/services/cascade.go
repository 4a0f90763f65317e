package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
)

// CascadeService resolves the dependent-row set for each entity deletion and
// removes it leaves-first: Destination -> Restaurant -> Order -> OrderItem
// and User -> Order -> OrderItem. Callers run these inside one transaction
// so a root is never removed without its dependents (and vice versa).
//
// Postgres also carries ON DELETE CASCADE foreign keys as a backstop, but the
// resolver is the source of truth so the SQLite test store behaves the same.
type CascadeService interface {
	DeleteOrder(ctx context.Context, tx *gorm.DB, orderID uint) error
	DeleteRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) error
	DeleteDestination(ctx context.Context, tx *gorm.DB, destinationID uint) error
	DeleteUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type cascadeService struct {
	log             *logger.Logger
	destinationRepo repos.DestinationRepo
	restaurantRepo  repos.RestaurantRepo
	userRepo        repos.UserRepo
	orderRepo       repos.OrderRepo
	orderItemRepo   repos.OrderItemRepo
	userTokenRepo   repos.UserTokenRepo
}

func NewCascadeService(
	baseLog *logger.Logger,
	destinationRepo repos.DestinationRepo,
	restaurantRepo repos.RestaurantRepo,
	userRepo repos.UserRepo,
	orderRepo repos.OrderRepo,
	orderItemRepo repos.OrderItemRepo,
	userTokenRepo repos.UserTokenRepo,
) CascadeService {
	return &cascadeService{
		log:             baseLog.With("service", "CascadeService"),
		destinationRepo: destinationRepo,
		restaurantRepo:  restaurantRepo,
		userRepo:        userRepo,
		orderRepo:       orderRepo,
		orderItemRepo:   orderItemRepo,
		userTokenRepo:   userTokenRepo,
	}
}

func (cs *cascadeService) DeleteOrder(ctx context.Context, tx *gorm.DB, orderID uint) error {
	if err := cs.orderItemRepo.DeleteByOrderID(ctx, tx, orderID); err != nil {
		return err
	}
	return cs.orderRepo.Delete(ctx, tx, orderID)
}

func (cs *cascadeService) deleteOrdersOf(ctx context.Context, tx *gorm.DB, orderIDs []uint) error {
	if err := cs.orderItemRepo.DeleteByOrderIDs(ctx, tx, orderIDs); err != nil {
		return err
	}
	return nil
}

func (cs *cascadeService) DeleteRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) error {
	orderIDs, err := cs.orderRepo.ListIDsByRestaurantID(ctx, tx, restaurantID)
	if err != nil {
		return err
	}
	if err := cs.deleteOrdersOf(ctx, tx, orderIDs); err != nil {
		return err
	}
	if err := cs.orderRepo.DeleteByRestaurantID(ctx, tx, restaurantID); err != nil {
		return err
	}
	return cs.restaurantRepo.Delete(ctx, tx, restaurantID)
}

func (cs *cascadeService) DeleteDestination(ctx context.Context, tx *gorm.DB, destinationID uint) error {
	restaurants, err := cs.restaurantRepo.ListByDestinationID(ctx, tx, destinationID)
	if err != nil {
		return err
	}
	for _, restaurant := range restaurants {
		if err := cs.DeleteRestaurant(ctx, tx, restaurant.RestaurantID); err != nil {
			return err
		}
	}
	return cs.destinationRepo.Delete(ctx, tx, destinationID)
}

func (cs *cascadeService) DeleteUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	orderIDs, err := cs.orderRepo.ListIDsByUserID(ctx, tx, userID)
	if err != nil {
		return err
	}
	if err := cs.deleteOrdersOf(ctx, tx, orderIDs); err != nil {
		return err
	}
	if err := cs.orderRepo.DeleteByUserID(ctx, tx, userID); err != nil {
		return err
	}
	if err := cs.userTokenRepo.DeleteByUserID(ctx, tx, userID); err != nil {
		return err
	}
	return cs.userRepo.Delete(ctx, tx, userID)
}
