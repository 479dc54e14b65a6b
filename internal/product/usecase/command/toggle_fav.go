package command

import (
	"context"
	"fmt"

	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/logger"
)

// ToggleFavCommand flips the user's favorite on a product
type ToggleFavCommand struct {
	ProductID uint
	UserID    uint
}

// ToggleFavHandler handles the favorite toggle command
type ToggleFavHandler struct {
	repo      domain.ProductRepository
	publisher EventPublisher
}

// NewToggleFavHandler creates a new toggle fav handler
func NewToggleFavHandler(repo domain.ProductRepository, publisher EventPublisher) *ToggleFavHandler {
	return &ToggleFavHandler{repo: repo, publisher: publisher}
}

// Handle toggles the fav and returns the new liked state
func (h *ToggleFavHandler) Handle(ctx context.Context, cmd ToggleFavCommand) (bool, error) {
	if cmd.ProductID == 0 || cmd.UserID == 0 {
		return false, fmt.Errorf("%w: product and user are required", domain.ErrInvalidInput)
	}

	liked, err := h.repo.ToggleFav(ctx, cmd.ProductID, cmd.UserID)
	if err != nil {
		return false, err
	}

	event := kafka.ProductFavoritedEvent{
		ProductID: cmd.ProductID,
		UserID:    cmd.UserID,
		Liked:     liked,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ProductID).Msg("Failed to publish fav event")
	}

	return liked, nil
}
