package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type OrderItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.OrderItem) error
	GetByID(ctx context.Context, tx *gorm.DB, itemID uint) (*types.OrderItem, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.OrderItem, error)
	ListByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) ([]*types.OrderItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.OrderItem) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uint) error
	DeleteByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) error
	DeleteByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []uint) error
}

type orderItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return &orderItemRepo{db: db, log: baseLog.With("repo", "OrderItemRepo")}
}

func (oir *orderItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.OrderItem) error {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (oir *orderItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uint) (*types.OrderItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	var result types.OrderItem
	err := transaction.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (oir *orderItemRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.OrderItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	var results []*types.OrderItem
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (oir *orderItemRepo) ListByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) ([]*types.OrderItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	var results []*types.OrderItem
	if err := transaction.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (oir *orderItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.OrderItem) error {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	return transaction.WithContext(ctx).Save(item).Error
}

func (oir *orderItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	return transaction.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&types.OrderItem{}).Error
}

func (oir *orderItemRepo) DeleteByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	return transaction.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&types.OrderItem{}).Error
}

func (oir *orderItemRepo) DeleteByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = oir.db
	}
	if len(orderIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Delete(&types.OrderItem{}).Error
}
