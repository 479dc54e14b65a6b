package domain

import (
	"fmt"
	"time"
)

// Purchase records that a user bought a product
type Purchase struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	ProductID uint      `json:"productId" gorm:"not null;index"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (Purchase) TableName() string {
	return "purchases"
}

// RecordKind selects one of the profile product lists
type RecordKind string

const (
	RecordPurchases RecordKind = "purchases"
	RecordSales     RecordKind = "sales"
	RecordFavs      RecordKind = "favs"
)

// ParseRecordKind validates a kind taken from a URL
func ParseRecordKind(s string) (RecordKind, error) {
	switch k := RecordKind(s); k {
	case RecordPurchases, RecordSales, RecordFavs:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown record kind %q", ErrInvalidInput, s)
}

// Record is one row of a profile list: a purchase, a sale or a fav with its product
type Record struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Product   Product   `json:"product"`
}
