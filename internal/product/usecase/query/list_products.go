package query

import (
	"context"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/feed"
	"github.com/tair/market/internal/product/domain"
)

// ListProductsQuery asks for one one-based feed page
type ListProductsQuery struct {
	Page int
}

// ListProductsHandler handles list products query. The API handler and the
// home page both call it so their payloads cannot drift.
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) (*api.FeedResponse, error) {
	products, err := h.repo.FindPage(ctx, feed.Offset(query.Page), feed.PageSize)
	if err != nil {
		return nil, err
	}

	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []domain.Product{}
	}

	return &api.FeedResponse{
		OK:       true,
		Products: products,
		Pages:    feed.Pages(total),
	}, nil
}
