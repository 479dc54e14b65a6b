package domain

import "time"

// Fav marks a product as liked by a user; one row per (user, product)
type Fav struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_favs_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_favs_user_product;index"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (Fav) TableName() string {
	return "favs"
}
