package app

import (
	"fmt"

	"gorm.io/gorm"

	productdomain "github.com/tair/market/internal/product/domain"
	streamdomain "github.com/tair/market/internal/stream/domain"
	userdomain "github.com/tair/market/internal/user/domain"
)

// Models lists every table the service owns, users first
func Models() []any {
	return []any{
		&userdomain.User{},
		&productdomain.Product{},
		&productdomain.Fav{},
		&productdomain.Purchase{},
		&streamdomain.Stream{},
	}
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
