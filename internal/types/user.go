package types

type User struct {
	UserID       uint   `gorm:"primaryKey;autoIncrement;column:user_id" json:"userId"`
	Username     string `gorm:"size:50;uniqueIndex;not null;column:username" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string `gorm:"size:255;not null;column:password_hash" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false;column:is_admin" json:"isAdmin"`

	Orders []Order `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (User) TableName() string {
	return "user"
}
