package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Seller is the public projection of the owning user
type Seller struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TableName specifies the table name
func (Seller) TableName() string {
	return "users"
}

// Product represents the product entity. FavCount is never stored; it is
// filled by queries that select the fav_count subquery.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	User        *Seller   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	FavCount    int64     `json:"-" gorm:"column:fav_count;->;-:migration"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// FavTally is rendered as "_count" next to the product fields
type FavTally struct {
	Favs int64 `json:"favs"`
}

type productAlias Product

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productAlias
		Count FavTally `json:"_count"`
	}{
		productAlias: productAlias(p),
		Count:        FavTally{Favs: p.FavCount},
	})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	aux := struct {
		*productAlias
		Count *FavTally `json:"_count"`
	}{
		productAlias: (*productAlias)(p),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Count != nil {
		p.FavCount = aux.Count.Favs
	}
	return nil
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindPage(ctx context.Context, offset, limit int) ([]Product, error)
	FindRelated(ctx context.Context, product *Product, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)

	IsLiked(ctx context.Context, productID, userID uint) (bool, error)
	// ToggleFav creates or removes the (user, product) fav and reports the new state
	ToggleFav(ctx context.Context, productID, userID uint) (bool, error)

	CreatePurchase(ctx context.Context, purchase *Purchase) error
	ListRecords(ctx context.Context, kind RecordKind, userID uint) ([]Record, error)
}
