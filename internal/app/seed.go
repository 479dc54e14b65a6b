package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/market/internal/product"
	productcommand "github.com/tair/market/internal/product/usecase/command"
	"github.com/tair/market/internal/user"
	usercommand "github.com/tair/market/internal/user/usecase/command"
	userdomain "github.com/tair/market/internal/user/domain"
	"github.com/tair/market/pkg/logger"
)

// SeedOptions controls the demo catalog
type SeedOptions struct {
	SellerEmail    string
	SellerPassword string
	Products       int
}

var demoNames = []string{"Vintage Camera", "Camera Strap", "Desk Lamp", "Wool Blanket", "Coffee Grinder"}

// SeedCatalog creates a seller account (or reuses it) and lists opts.Products
// products under it. Products are named after demoNames so related lookups
// have something to match.
func SeedCatalog(ctx context.Context, db *gorm.DB, opts SeedOptions) (int, error) {
	if opts.Products < 0 {
		return 0, errors.New("products cannot be negative")
	}

	users := user.ProvideUserRepository(db)
	seller, err := usercommand.NewRegisterUserHandler(users).Handle(ctx, usercommand.RegisterUserCommand{
		Name:     "Demo Seller",
		Email:    opts.SellerEmail,
		Password: opts.SellerPassword,
	})
	if errors.Is(err, userdomain.ErrEmailTaken) {
		seller, err = users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(opts.SellerEmail)))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seller: %w", err)
	}

	create := productcommand.NewCreateProductHandler(product.ProvideProductRepository(db))
	for i := 0; i < opts.Products; i++ {
		name := fmt.Sprintf("%s #%d", demoNames[i%len(demoNames)], i+1)
		_, err := create.Handle(ctx, productcommand.CreateProductCommand{
			UserID:      seller.ID,
			Name:        name,
			Price:       float64(10 + i),
			Description: "Seeded listing",
		})
		if err != nil {
			return i, fmt.Errorf("failed to create product %d: %w", i+1, err)
		}
	}

	logger.Info(ctx).
		Uint("seller_id", seller.ID).
		Int("products", opts.Products).
		Msg("Catalog seeded")
	return opts.Products, nil
}
