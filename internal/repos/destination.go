package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type DestinationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, destination *types.Destination) error
	GetByID(ctx context.Context, tx *gorm.DB, destinationID uint) (*types.Destination, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Destination, error)
	Exists(ctx context.Context, tx *gorm.DB, destinationID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, destination *types.Destination) error
	Delete(ctx context.Context, tx *gorm.DB, destinationID uint) error
}

type destinationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDestinationRepo(db *gorm.DB, baseLog *logger.Logger) DestinationRepo {
	return &destinationRepo{db: db, log: baseLog.With("repo", "DestinationRepo")}
}

func (dr *destinationRepo) Create(ctx context.Context, tx *gorm.DB, destination *types.Destination) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Create(destination).Error
}

func (dr *destinationRepo) GetByID(ctx context.Context, tx *gorm.DB, destinationID uint) (*types.Destination, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Destination
	err := transaction.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *destinationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Destination, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Destination
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *destinationRepo) Exists(ctx context.Context, tx *gorm.DB, destinationID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Destination{}).
		Where("destination_id = ?", destinationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *destinationRepo) Update(ctx context.Context, tx *gorm.DB, destination *types.Destination) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Save(destination).Error
}

func (dr *destinationRepo) Delete(ctx context.Context, tx *gorm.DB, destinationID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		Delete(&types.Destination{}).Error
}
