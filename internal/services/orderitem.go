package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

// OrderItemService covers the single-item mutations and the atomic batch
// insert. Every path validates the referenced order, persists its change, and
// calls the recalculation engine once per affected order.
type OrderItemService interface {
	Create(ctx context.Context, req *types.OrderItemDTO) (*types.OrderItem, error)
	Update(ctx context.Context, itemID uint, req *types.OrderItemDTO) error
	Delete(ctx context.Context, itemID uint) error
	AddMultiple(ctx context.Context, orderID uint, items []types.OrderItemDTO) ([]*types.OrderItem, error)
	GetByID(ctx context.Context, itemID uint) (*types.OrderItem, error)
	List(ctx context.Context) ([]*types.OrderItem, error)
	ListByOrder(ctx context.Context, orderID uint) ([]*types.OrderItem, error)
}

type orderItemService struct {
	db            *gorm.DB
	log           *logger.Logger
	orderRepo     repos.OrderRepo
	orderItemRepo repos.OrderItemRepo
	totals        OrderTotalService
}

func NewOrderItemService(
	db *gorm.DB,
	baseLog *logger.Logger,
	orderRepo repos.OrderRepo,
	orderItemRepo repos.OrderItemRepo,
	totals OrderTotalService,
) OrderItemService {
	return &orderItemService{
		db:            db,
		log:           baseLog.With("service", "OrderItemService"),
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		totals:        totals,
	}
}

func (ois *orderItemService) requireOrder(ctx context.Context, tx *gorm.DB, orderID uint) error {
	exists, err := ois.orderRepo.Exists(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NewValidation(apperr.KindInvalidOrder, "Invalid Order ID")
	}
	return nil
}

func (ois *orderItemService) Create(ctx context.Context, req *types.OrderItemDTO) (*types.OrderItem, error) {
	item := &types.OrderItem{
		OrderID:   req.OrderID,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice.Round(2),
	}
	err := ois.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ois.requireOrder(ctx, tx, req.OrderID); err != nil {
			return err
		}
		if err := ois.orderItemRepo.Create(ctx, tx, []*types.OrderItem{item}); err != nil {
			return err
		}
		_, err := ois.totals.Recompute(ctx, tx, req.OrderID)
		return err
	})
	if err != nil {
		return nil, wrapStore("create order item", err)
	}
	return item, nil
}

// Update rewrites the item's fields, including a possible re-parenting to a
// different order. When the parent changes, both the old and the new order
// totals are recomputed.
func (ois *orderItemService) Update(ctx context.Context, itemID uint, req *types.OrderItemDTO) error {
	err := ois.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ois.requireOrder(ctx, tx, req.OrderID); err != nil {
			return err
		}
		item, err := ois.orderItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.ErrNotFound
		}

		previousOrderID := item.OrderID
		item.OrderID = req.OrderID
		item.ItemName = req.ItemName
		item.Quantity = req.Quantity
		item.UnitPrice = req.UnitPrice.Round(2)
		if err := ois.orderItemRepo.Update(ctx, tx, item); err != nil {
			return err
		}

		if _, err := ois.totals.Recompute(ctx, tx, item.OrderID); err != nil {
			return err
		}
		if previousOrderID != item.OrderID {
			if _, err := ois.totals.Recompute(ctx, tx, previousOrderID); err != nil {
				return err
			}
		}
		return nil
	})
	return wrapStore("update order item", err)
}

func (ois *orderItemService) Delete(ctx context.Context, itemID uint) error {
	err := ois.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ois.orderItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.ErrNotFound
		}
		parentOrderID := item.OrderID
		if err := ois.orderItemRepo.Delete(ctx, tx, itemID); err != nil {
			return err
		}
		_, err = ois.totals.Recompute(ctx, tx, parentOrderID)
		return err
	})
	return wrapStore("delete order item", err)
}

// AddMultiple validates the order once, inserts the whole batch, and
// recomputes the total once. The batch and the recompute share one
// transaction, so a partial insert can never remain.
func (ois *orderItemService) AddMultiple(ctx context.Context, orderID uint, reqs []types.OrderItemDTO) ([]*types.OrderItem, error) {
	items := make([]*types.OrderItem, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, &types.OrderItem{
			OrderID:   orderID,
			ItemName:  req.ItemName,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice.Round(2),
		})
	}
	err := ois.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ois.requireOrder(ctx, tx, orderID); err != nil {
			return err
		}
		if err := ois.orderItemRepo.Create(ctx, tx, items); err != nil {
			return err
		}
		_, err := ois.totals.Recompute(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, wrapStore("add multiple order items", err)
	}
	return items, nil
}

func (ois *orderItemService) GetByID(ctx context.Context, itemID uint) (*types.OrderItem, error) {
	item, err := ois.orderItemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return nil, wrapStore("get order item", err)
	}
	if item == nil {
		return nil, apperr.ErrNotFound
	}
	return item, nil
}

func (ois *orderItemService) List(ctx context.Context) ([]*types.OrderItem, error) {
	items, err := ois.orderItemRepo.List(ctx, nil)
	if err != nil {
		return nil, wrapStore("list order items", err)
	}
	return items, nil
}

func (ois *orderItemService) ListByOrder(ctx context.Context, orderID uint) ([]*types.OrderItem, error) {
	exists, err := ois.orderRepo.Exists(ctx, nil, orderID)
	if err != nil {
		return nil, wrapStore("list order items by order", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	items, err := ois.orderItemRepo.ListByOrderID(ctx, nil, orderID)
	if err != nil {
		return nil, wrapStore("list order items by order", err)
	}
	return items, nil
}
