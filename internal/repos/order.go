package repos

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) error
	GetByID(ctx context.Context, tx *gorm.DB, orderID uint) (*types.Order, error)
	GetByIDWithItems(ctx context.Context, tx *gorm.DB, orderID uint) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Order, error)
	ListByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]*types.Order, error)
	ListIDsByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error)
	ListIDsByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]uint, error)
	Exists(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error)
	UpdateVersioned(ctx context.Context, tx *gorm.DB, order *types.Order) error
	SetTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error
	Delete(ctx context.Context, tx *gorm.DB, orderID uint) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uint) error
	DeleteByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).Create(order).Error
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, orderID uint) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var result types.Order
	err := transaction.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) GetByIDWithItems(ctx context.Context, tx *gorm.DB, orderID uint) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var result types.Order
	err := transaction.WithContext(ctx).
		Preload("OrderItems").
		Where("order_id = ?", orderID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListIDsByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("user_id = ?", userID).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (or *orderRepo) ListIDsByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("restaurant_id = ?", restaurantID).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (or *orderRepo) Exists(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateVersioned writes the order's mutable fields guarded by its version
// token. A stale version (or a row that vanished) affects zero rows and
// surfaces as apperr.ErrConcurrencyConflict; the caller disambiguates.
func (or *orderRepo) UpdateVersioned(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("order_id = ? AND version = ?", order.OrderID, order.Version).
		Updates(map[string]interface{}{
			"restaurant_id":    order.RestaurantID,
			"user_id":          order.UserID,
			"order_date":       order.OrderDate,
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"special_requests": order.SpecialRequests,
			"version":          gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrConcurrencyConflict
	}
	order.Version++
	return nil
}

// SetTotal writes the derived total. A missing order is a silent no-op; the
// recalculation engine only runs where existence is implied.
func (or *orderRepo) SetTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumns(map[string]interface{}{
			"total_amount": total,
			"version":      gorm.Expr("version + 1"),
		}).Error
}

func (or *orderRepo) Delete(ctx context.Context, tx *gorm.DB, orderID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&types.Order{}).Error
}

func (or *orderRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Order{}).Error
}

func (or *orderRepo) DeleteByRestaurantID(ctx context.Context, tx *gorm.DB, restaurantID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Delete(&types.Order{}).Error
}
