package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type RestaurantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error
	GetByID(ctx context.Context, tx *gorm.DB, restaurantID uint) (*types.Restaurant, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Restaurant, error)
	ListByDestinationID(ctx context.Context, tx *gorm.DB, destinationID uint) ([]*types.Restaurant, error)
	Exists(ctx context.Context, tx *gorm.DB, restaurantID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error
	Delete(ctx context.Context, tx *gorm.DB, restaurantID uint) error
}

type restaurantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRestaurantRepo(db *gorm.DB, baseLog *logger.Logger) RestaurantRepo {
	return &restaurantRepo{db: db, log: baseLog.With("repo", "RestaurantRepo")}
}

func (rr *restaurantRepo) Create(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(restaurant).Error
}

func (rr *restaurantRepo) GetByID(ctx context.Context, tx *gorm.DB, restaurantID uint) (*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Restaurant
	err := transaction.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *restaurantRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Restaurant
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *restaurantRepo) ListByDestinationID(ctx context.Context, tx *gorm.DB, destinationID uint) ([]*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Restaurant
	if err := transaction.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *restaurantRepo) Exists(ctx context.Context, tx *gorm.DB, restaurantID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Restaurant{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *restaurantRepo) Update(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(restaurant).Error
}

func (rr *restaurantRepo) Delete(ctx context.Context, tx *gorm.DB, restaurantID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Delete(&types.Restaurant{}).Error
}
