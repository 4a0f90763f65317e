package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root: TotalAmount is derived from its items and must
// equal sum(quantity * unitPrice) after every item mutation. Version is the
// optimistic-concurrency token checked on every order update.
type Order struct {
	OrderID         uint            `gorm:"primaryKey;autoIncrement;column:order_id" json:"orderId"`
	RestaurantID    uint            `gorm:"not null;index:idx_order_restaurant;column:restaurant_id" json:"restaurantId"`
	UserID          uint            `gorm:"not null;index:idx_order_user;column:user_id" json:"userId"`
	OrderDate       time.Time       `gorm:"not null;column:order_date" json:"orderDate"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00;column:total_amount" json:"totalAmount"`
	Status          string          `gorm:"size:20;not null;default:'pending';column:status" json:"status"`
	SpecialRequests string          `gorm:"type:text;column:special_requests" json:"specialRequests"`
	Version         int64           `gorm:"not null;default:1;column:version" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"-"`
}

func (Order) TableName() string {
	return "order"
}
