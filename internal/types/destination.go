package types

import (
	"time"
)

type Destination struct {
	DestinationID uint      `gorm:"primaryKey;autoIncrement;column:destination_id" json:"destinationId"`
	Name          string    `gorm:"size:100;not null;column:name" json:"name"`
	Location      string    `gorm:"size:100;not null;column:location" json:"location"`
	Description   string    `gorm:"type:text;column:description" json:"description"`
	ImageURL      string    `gorm:"size:255;column:image_url" json:"imageUrl"`
	Date          time.Time `gorm:"not null;column:date" json:"date"`
	CreatorUserID *uint     `gorm:"column:creator_user_id" json:"creatorUserId"`

	Restaurants []Restaurant `gorm:"foreignKey:DestinationID;references:DestinationID" json:"-"`
}

func (Destination) TableName() string {
	return "destination"
}
