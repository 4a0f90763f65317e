package types

import (
	"time"
)

type Restaurant struct {
	RestaurantID   uint      `gorm:"primaryKey;autoIncrement;column:restaurant_id" json:"restaurantId"`
	DestinationID  uint      `gorm:"not null;index:idx_restaurant_destination;column:destination_id" json:"destinationId"`
	Name           string    `gorm:"size:100;not null;column:name" json:"name"`
	CuisineType    string    `gorm:"size:50;column:cuisine_type" json:"cuisineType"`
	PriceRange     string    `gorm:"size:10;column:price_range" json:"priceRange"`
	ContactInfo    string    `gorm:"size:100;column:contact_info" json:"contactInfo"`
	OperatingHours string    `gorm:"size:100;column:operating_hours" json:"operatingHours"`
	Address        string    `gorm:"size:255;column:address" json:"address"`
	ImageURL       string    `gorm:"size:255;column:image_url" json:"imageUrl"`
	Date           time.Time `gorm:"not null;column:date" json:"date"`

	Orders []Order `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurant"
}
