package types

import (
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ItemID    uint            `gorm:"primaryKey;autoIncrement;column:item_id" json:"itemId"`
	OrderID   uint            `gorm:"not null;index:idx_order_item;column:order_id" json:"orderId"`
	ItemName  string          `gorm:"size:100;not null;column:item_name" json:"itemName"`
	Quantity  int             `gorm:"not null;column:quantity" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(8,2);not null;column:unit_price" json:"unitPrice"`
}

func (OrderItem) TableName() string {
	return "order_item"
}
