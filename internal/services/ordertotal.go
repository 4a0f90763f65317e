package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
)

// OrderTotalService is the single place the derived order total is computed.
// Every mutation path that touches order items calls Recompute exactly once
// after its writes are persisted; nothing recomputes totals inline.
type OrderTotalService interface {
	Recompute(ctx context.Context, tx *gorm.DB, orderID uint) (decimal.Decimal, error)
}

type orderTotalService struct {
	db            *gorm.DB
	log           *logger.Logger
	orderRepo     repos.OrderRepo
	orderItemRepo repos.OrderItemRepo
}

func NewOrderTotalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	orderRepo repos.OrderRepo,
	orderItemRepo repos.OrderItemRepo,
) OrderTotalService {
	return &orderTotalService{
		db:            db,
		log:           baseLog.With("service", "OrderTotalService"),
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// Recompute loads the order's current items, sums quantity * unitPrice in
// decimal arithmetic, and writes the result into the order. If the order row
// does not exist the write is a no-op.
func (ots *orderTotalService) Recompute(ctx context.Context, tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ots.db
	}

	items, err := ots.orderItemRepo.ListByOrderID(ctx, transaction, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	total = total.Round(2)

	if err := ots.orderRepo.SetTotal(ctx, transaction, orderID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
