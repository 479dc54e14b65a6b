package command

import (
	"context"
	"fmt"

	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/logger"
)

// PurchaseProductCommand records a purchase by the current user
type PurchaseProductCommand struct {
	ProductID uint
	UserID    uint
}

// PurchaseProductHandler handles the purchase command
type PurchaseProductHandler struct {
	repo      domain.ProductRepository
	publisher EventPublisher
}

// NewPurchaseProductHandler creates a new purchase handler
func NewPurchaseProductHandler(repo domain.ProductRepository, publisher EventPublisher) *PurchaseProductHandler {
	return &PurchaseProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the purchase command
func (h *PurchaseProductHandler) Handle(ctx context.Context, cmd PurchaseProductCommand) (*domain.Purchase, error) {
	if cmd.ProductID == 0 || cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: product and user are required", domain.ErrInvalidInput)
	}

	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product.UserID == cmd.UserID {
		return nil, fmt.Errorf("%w: cannot buy your own product", domain.ErrInvalidInput)
	}

	purchase := &domain.Purchase{
		UserID:    cmd.UserID,
		ProductID: product.ID,
	}
	if err := h.repo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	event := kafka.ProductPurchasedEvent{
		PurchaseID: purchase.ID,
		ProductID:  product.ID,
		UserID:     cmd.UserID,
		Amount:     product.Price,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Uint("purchase_id", purchase.ID).Msg("Failed to publish purchase event")
	}

	purchase.Product = product
	return purchase, nil
}
