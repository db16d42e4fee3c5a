package product

import "time"

// Product represents the products table
type Product struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(128);not null"`
	Price       int64  `gorm:"not null;default:0"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string {
	return "products"
}

// Favorite marks a product as loved by a user. One row per (user, product).
type Favorite struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uniq_fav_user_product,priority:1"`
	ProductID uint64 `gorm:"not null;uniqueIndex:uniq_fav_user_product,priority:2;index"`
	CreatedAt time.Time
}

func (Favorite) TableName() string {
	return "favs"
}
