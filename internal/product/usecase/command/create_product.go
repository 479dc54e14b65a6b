package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/market/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	UserID      uint
	Name        string
	Price       float64
	Description string
	Image       string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		Name:        name,
		Price:       cmd.Price,
		Description: strings.TrimSpace(cmd.Description),
		Image:       strings.TrimSpace(cmd.Image),
		UserID:      cmd.UserID,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
