package types

import (
	"time"
)

type UserToken struct {
	TokenID      uint      `gorm:"primaryKey;autoIncrement;column:token_id" json:"tokenId"`
	UserID       uint      `gorm:"not null;index;column:user_id" json:"userId"`
	AccessToken  string    `gorm:"size:512;index;column:access_token" json:"-"`
	RefreshToken string    `gorm:"size:64;index;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;column:expires_at" json:"expiresAt"`
}

func (UserToken) TableName() string {
	return "user_token"
}
