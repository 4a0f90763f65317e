package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

const defaultOrderStatus = "pending"

// OrderService owns the order mutation protocol: an order and its items are
// created, replaced, and deleted as one logical unit, and every mutation ends
// with exactly one total recomputation.
type OrderService interface {
	Create(ctx context.Context, req *types.OrderDTO) (*types.Order, error)
	Update(ctx context.Context, orderID uint, req *types.OrderDTO) (int, error)
	Delete(ctx context.Context, orderID uint) error
	GetByID(ctx context.Context, orderID uint) (*types.Order, error)
	List(ctx context.Context) ([]*types.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*types.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]*types.Order, error)
	ListItems(ctx context.Context, orderID uint) ([]*types.OrderItem, error)
}

type orderService struct {
	db             *gorm.DB
	log            *logger.Logger
	orderRepo      repos.OrderRepo
	orderItemRepo  repos.OrderItemRepo
	restaurantRepo repos.RestaurantRepo
	userRepo       repos.UserRepo
	totals         OrderTotalService
	cascade        CascadeService
}

func NewOrderService(
	db *gorm.DB,
	baseLog *logger.Logger,
	orderRepo repos.OrderRepo,
	orderItemRepo repos.OrderItemRepo,
	restaurantRepo repos.RestaurantRepo,
	userRepo repos.UserRepo,
	totals OrderTotalService,
	cascade CascadeService,
) OrderService {
	return &orderService{
		db:             db,
		log:            baseLog.With("service", "OrderService"),
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		totals:         totals,
		cascade:        cascade,
	}
}

// filterOrderItems applies the documented lenient policy: items with a blank
// name, a non-positive quantity, or a negative unit price are dropped and
// counted instead of failing the whole call.
func filterOrderItems(orderID uint, in []types.OrderItemDTO) ([]*types.OrderItem, int) {
	var kept []*types.OrderItem
	skipped := 0
	for _, dto := range in {
		if strings.TrimSpace(dto.ItemName) == "" || dto.Quantity <= 0 || dto.UnitPrice.IsNegative() {
			skipped++
			continue
		}
		kept = append(kept, &types.OrderItem{
			OrderID:   orderID,
			ItemName:  dto.ItemName,
			Quantity:  dto.Quantity,
			UnitPrice: dto.UnitPrice.Round(2),
		})
	}
	return kept, skipped
}

func (os *orderService) validateOrderRefs(ctx context.Context, tx *gorm.DB, restaurantID, userID uint) error {
	restaurantExists, err := os.restaurantRepo.Exists(ctx, tx, restaurantID)
	if err != nil {
		return err
	}
	if !restaurantExists {
		return apperr.NewValidation(apperr.KindInvalidRestaurant, "Invalid Restaurant ID")
	}
	userExists, err := os.userRepo.Exists(ctx, tx, userID)
	if err != nil {
		return err
	}
	if !userExists {
		return apperr.NewValidation(apperr.KindInvalidUser, "Invalid User ID")
	}
	return nil
}

// Create persists the order first, then its initial items, then recomputes
// the total once. A caller-supplied total is only honored when the request
// carries no items; with items, the recomputation always wins.
func (os *orderService) Create(ctx context.Context, req *types.OrderDTO) (*types.Order, error) {
	var created *types.Order
	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := os.validateOrderRefs(ctx, tx, req.RestaurantID, req.UserID); err != nil {
			return err
		}

		status := req.Status
		if status == "" {
			status = defaultOrderStatus
		}
		order := &types.Order{
			RestaurantID:    req.RestaurantID,
			UserID:          req.UserID,
			OrderDate:       time.Now(),
			Status:          status,
			SpecialRequests: req.SpecialRequests,
		}

		items, skipped := filterOrderItems(0, req.OrderItems)
		if len(req.OrderItems) == 0 {
			// Caller-supplied total is only trusted when the request carries
			// no items at all; otherwise the recomputation below wins.
			order.TotalAmount = req.TotalAmount.Round(2)
		}
		if err := os.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}

		if len(req.OrderItems) > 0 {
			for _, item := range items {
				item.OrderID = order.OrderID
			}
			if err := os.orderItemRepo.Create(ctx, tx, items); err != nil {
				return err
			}
			total, err := os.totals.Recompute(ctx, tx, order.OrderID)
			if err != nil {
				return err
			}
			order.TotalAmount = total
			order.OrderItems = make([]types.OrderItem, 0, len(items))
			for _, item := range items {
				order.OrderItems = append(order.OrderItems, *item)
			}
		}
		if skipped > 0 {
			os.log.Warn("Create skipped malformed order items", "order_id", order.OrderID, "skipped", skipped)
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, wrapStore("create order", err)
	}
	return created, nil
}

// Update is a full replace: the existing item set is deleted and the incoming
// set inserted fresh, then the total is recomputed exactly once. Returns the
// number of incoming items dropped by the lenient filter.
func (os *orderService) Update(ctx context.Context, orderID uint, req *types.OrderDTO) (int, error) {
	skipped := 0
	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := os.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.ErrNotFound
		}
		if err := os.validateOrderRefs(ctx, tx, req.RestaurantID, req.UserID); err != nil {
			return err
		}

		order.RestaurantID = req.RestaurantID
		order.UserID = req.UserID
		order.Status = req.Status
		order.SpecialRequests = req.SpecialRequests
		if !req.OrderDate.IsZero() {
			order.OrderDate = req.OrderDate
		}
		order.TotalAmount = req.TotalAmount.Round(2)

		if err := os.orderItemRepo.DeleteByOrderID(ctx, tx, orderID); err != nil {
			return err
		}
		var items []*types.OrderItem
		items, skipped = filterOrderItems(orderID, req.OrderItems)
		if err := os.orderItemRepo.Create(ctx, tx, items); err != nil {
			return err
		}

		if err := os.orderRepo.UpdateVersioned(ctx, tx, order); err != nil {
			if errors.Is(err, apperr.ErrConcurrencyConflict) {
				stillThere, exErr := os.orderRepo.Exists(ctx, tx, orderID)
				if exErr != nil {
					return exErr
				}
				if !stillThere {
					return apperr.ErrNotFound
				}
			}
			return err
		}

		_, err = os.totals.Recompute(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return 0, wrapStore("update order", err)
	}
	if skipped > 0 {
		os.log.Warn("Update skipped malformed order items", "order_id", orderID, "skipped", skipped)
	}
	return skipped, nil
}

// Delete removes the order and all of its items in one transaction. No total
// recomputation: the aggregate root is gone.
func (os *orderService) Delete(ctx context.Context, orderID uint) error {
	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := os.orderRepo.Exists(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrNotFound
		}
		return os.cascade.DeleteOrder(ctx, tx, orderID)
	})
	return wrapStore("delete order", err)
}

func (os *orderService) GetByID(ctx context.Context, orderID uint) (*types.Order, error) {
	order, err := os.orderRepo.GetByIDWithItems(ctx, nil, orderID)
	if err != nil {
		return nil, wrapStore("get order", err)
	}
	if order == nil {
		return nil, apperr.ErrNotFound
	}
	return order, nil
}

func (os *orderService) List(ctx context.Context) ([]*types.Order, error) {
	orders, err := os.orderRepo.List(ctx, nil)
	if err != nil {
		return nil, wrapStore("list orders", err)
	}
	return orders, nil
}

func (os *orderService) ListByUser(ctx context.Context, userID uint) ([]*types.Order, error) {
	exists, err := os.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return nil, wrapStore("list orders by user", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	orders, err := os.orderRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, wrapStore("list orders by user", err)
	}
	return orders, nil
}

func (os *orderService) ListByRestaurant(ctx context.Context, restaurantID uint) ([]*types.Order, error) {
	exists, err := os.restaurantRepo.Exists(ctx, nil, restaurantID)
	if err != nil {
		return nil, wrapStore("list orders by restaurant", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	orders, err := os.orderRepo.ListByRestaurantID(ctx, nil, restaurantID)
	if err != nil {
		return nil, wrapStore("list orders by restaurant", err)
	}
	return orders, nil
}

func (os *orderService) ListItems(ctx context.Context, orderID uint) ([]*types.OrderItem, error) {
	exists, err := os.orderRepo.Exists(ctx, nil, orderID)
	if err != nil {
		return nil, wrapStore("list order items", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	items, err := os.orderItemRepo.ListByOrderID(ctx, nil, orderID)
	if err != nil {
		return nil, wrapStore("list order items", err)
	}
	return items, nil
}
