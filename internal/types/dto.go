package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire shapes for the JSON API. Field names are fixed for compatibility with
// existing consumers; entities are never serialized directly.

type DestinationDTO struct {
	DestinationID uint            `json:"destinationId"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	Date          time.Time       `json:"date"`
	CreatorUserID *uint           `json:"creatorUserId,omitempty"`
	Restaurants   []RestaurantDTO `json:"restaurants,omitempty"`
}

type RestaurantDTO struct {
	RestaurantID   uint       `json:"restaurantId"`
	DestinationID  uint       `json:"destinationId"`
	Name           string     `json:"name"`
	CuisineType    string     `json:"cuisineType"`
	PriceRange     string     `json:"priceRange"`
	ContactInfo    string     `json:"contactInfo"`
	OperatingHours string     `json:"operatingHours"`
	Address        string     `json:"address"`
	ImageURL       string     `json:"imageUrl"`
	Date           time.Time  `json:"date"`
	Orders         []OrderDTO `json:"orders,omitempty"`
}

type UserDTO struct {
	UserID   uint       `json:"userId"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	IsAdmin  bool       `json:"isAdmin"`
	Orders   []OrderDTO `json:"orders,omitempty"`
}

type OrderDTO struct {
	OrderID         uint            `json:"orderId"`
	RestaurantID    uint            `json:"restaurantId"`
	UserID          uint            `json:"userId"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	SpecialRequests string          `json:"specialRequests"`
	OrderItems      []OrderItemDTO  `json:"orderItems,omitempty"`
}

type OrderItemDTO struct {
	ItemID    uint            `json:"itemId"`
	OrderID   uint            `json:"orderId"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (d *Destination) DTO() DestinationDTO {
	return DestinationDTO{
		DestinationID: d.DestinationID,
		Name:          d.Name,
		Location:      d.Location,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		Date:          d.Date,
		CreatorUserID: d.CreatorUserID,
	}
}

func (r *Restaurant) DTO() RestaurantDTO {
	return RestaurantDTO{
		RestaurantID:   r.RestaurantID,
		DestinationID:  r.DestinationID,
		Name:           r.Name,
		CuisineType:    r.CuisineType,
		PriceRange:     r.PriceRange,
		ContactInfo:    r.ContactInfo,
		OperatingHours: r.OperatingHours,
		Address:        r.Address,
		ImageURL:       r.ImageURL,
		Date:           r.Date,
	}
}

func (u *User) DTO() UserDTO {
	return UserDTO{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

func (o *Order) DTO() OrderDTO {
	dto := OrderDTO{
		OrderID:         o.OrderID,
		RestaurantID:    o.RestaurantID,
		UserID:          o.UserID,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		SpecialRequests: o.SpecialRequests,
	}
	for i := range o.OrderItems {
		dto.OrderItems = append(dto.OrderItems, o.OrderItems[i].DTO())
	}
	return dto
}

func (oi *OrderItem) DTO() OrderItemDTO {
	return OrderItemDTO{
		ItemID:    oi.ItemID,
		OrderID:   oi.OrderID,
		ItemName:  oi.ItemName,
		Quantity:  oi.Quantity,
		UnitPrice: oi.UnitPrice,
	}
}
