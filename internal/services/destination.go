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

type DestinationService interface {
	Create(ctx context.Context, req *types.DestinationDTO) (*types.Destination, error)
	Update(ctx context.Context, destinationID uint, req *types.DestinationDTO) error
	Delete(ctx context.Context, destinationID uint) error
	GetByID(ctx context.Context, destinationID uint) (*types.Destination, []*types.Restaurant, error)
	List(ctx context.Context) ([]*types.Destination, error)
	ListRestaurants(ctx context.Context, destinationID uint) ([]*types.Restaurant, error)
}

type destinationService struct {
	db              *gorm.DB
	log             *logger.Logger
	destinationRepo repos.DestinationRepo
	restaurantRepo  repos.RestaurantRepo
	cascade         CascadeService
}

func NewDestinationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	destinationRepo repos.DestinationRepo,
	restaurantRepo repos.RestaurantRepo,
	cascade CascadeService,
) DestinationService {
	return &destinationService{
		db:              db,
		log:             baseLog.With("service", "DestinationService"),
		destinationRepo: destinationRepo,
		restaurantRepo:  restaurantRepo,
		cascade:         cascade,
	}
}

func (ds *destinationService) Create(ctx context.Context, req *types.DestinationDTO) (*types.Destination, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, apperr.NewValidation(apperr.KindMissingField, "name and location are required")
	}
	destination := &types.Destination{
		Name:          req.Name,
		Location:      req.Location,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Date:          time.Now(),
		CreatorUserID: req.CreatorUserID,
	}
	if err := ds.destinationRepo.Create(ctx, nil, destination); err != nil {
		return nil, wrapStore("create destination", err)
	}
	return destination, nil
}

func (ds *destinationService) Update(ctx context.Context, destinationID uint, req *types.DestinationDTO) error {
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		destination, err := ds.destinationRepo.GetByID(ctx, tx, destinationID)
		if err != nil {
			return err
		}
		if destination == nil {
			return apperr.ErrNotFound
		}
		destination.Name = req.Name
		destination.Location = req.Location
		destination.Description = req.Description
		destination.ImageURL = req.ImageURL
		if req.CreatorUserID != nil {
			destination.CreatorUserID = req.CreatorUserID
		}
		return ds.destinationRepo.Update(ctx, tx, destination)
	})
	return wrapStore("update destination", err)
}

// Delete removes the destination and, transitively, its restaurants, their
// orders, and their order items in one transaction.
func (ds *destinationService) Delete(ctx context.Context, destinationID uint) error {
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ds.destinationRepo.Exists(ctx, tx, destinationID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrNotFound
		}
		return ds.cascade.DeleteDestination(ctx, tx, destinationID)
	})
	return wrapStore("delete destination", err)
}

func (ds *destinationService) GetByID(ctx context.Context, destinationID uint) (*types.Destination, []*types.Restaurant, error) {
	destination, err := ds.destinationRepo.GetByID(ctx, nil, destinationID)
	if err != nil {
		return nil, nil, wrapStore("get destination", err)
	}
	if destination == nil {
		return nil, nil, apperr.ErrNotFound
	}
	restaurants, err := ds.restaurantRepo.ListByDestinationID(ctx, nil, destinationID)
	if err != nil {
		return nil, nil, wrapStore("get destination", err)
	}
	return destination, restaurants, nil
}

func (ds *destinationService) List(ctx context.Context) ([]*types.Destination, error) {
	destinations, err := ds.destinationRepo.List(ctx, nil)
	if err != nil {
		return nil, wrapStore("list destinations", err)
	}
	return destinations, nil
}

func (ds *destinationService) ListRestaurants(ctx context.Context, destinationID uint) ([]*types.Restaurant, error) {
	exists, err := ds.destinationRepo.Exists(ctx, nil, destinationID)
	if err != nil {
		return nil, wrapStore("list destination restaurants", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	restaurants, err := ds.restaurantRepo.ListByDestinationID(ctx, nil, destinationID)
	if err != nil {
		return nil, wrapStore("list destination restaurants", err)
	}
	return restaurants, nil
}
