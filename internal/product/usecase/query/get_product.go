package query

import (
	"context"
	"fmt"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/product/domain"
)

// RelatedLimit caps the related products on a detail page
const RelatedLimit = 4

// GetProductQuery loads a product detail; ViewerID is zero for anonymous viewers
type GetProductQuery struct {
	ID       uint
	ViewerID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*api.ProductDetailResponse, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	product, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}

	related, err := h.repo.FindRelated(ctx, product, RelatedLimit)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []domain.Product{}
	}

	var liked bool
	if query.ViewerID != 0 {
		if liked, err = h.repo.IsLiked(ctx, product.ID, query.ViewerID); err != nil {
			return nil, err
		}
	}

	return &api.ProductDetailResponse{
		OK:              true,
		Product:         product,
		RelatedProducts: related,
		IsLiked:         liked,
	}, nil
}
